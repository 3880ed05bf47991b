// Package domain defines the core types and interfaces for the souschef
// backend. All other packages depend on domain; domain depends on nothing.
package domain

import "strconv"

// RecipeRecord is a recipe as delivered by an external suggester: a name
// plus an ordered step mapping. Step keys are integer-like strings supplied
// by the upstream model; they are not guaranteed to be contiguous, sorted,
// or to start at 1.
type RecipeRecord struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Steps       map[string]string `json:"steps"`
}

// Validate checks that the record is usable for cooking. A recipe with no
// name or no integer-keyed steps is rejected up front so a session is never
// created from it.
func (r *RecipeRecord) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Reason: "recipe name is empty"}
	}
	if len(r.Steps) == 0 {
		return &ValidationError{Field: "steps", Reason: "recipe has no steps"}
	}
	usable := 0
	for k := range r.Steps {
		if _, err := strconv.Atoi(k); err == nil {
			usable++
		}
	}
	if usable == 0 {
		return &ValidationError{Field: "steps", Reason: "no integer-keyed steps"}
	}
	return nil
}
