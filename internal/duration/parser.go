// Package duration extracts wait durations from natural-language recipe
// text. Patterns are tried in a fixed priority order and the first hit
// wins, so "20-second timer, about 1 minute prep" parses as 20 seconds.
package duration

import (
	"regexp"
	"strconv"

	"github.com/hammamikhairi/souschef/internal/logger"
)

// Unit is the time unit a duration was expressed in.
type Unit int

const (
	UnitSecond Unit = iota
	UnitMinute
	UnitHour
)

// Seconds returns the multiplier for the unit.
func (u Unit) Seconds() int {
	switch u {
	case UnitMinute:
		return 60
	case UnitHour:
		return 3600
	default:
		return 1
	}
}

// String returns the singular unit name.
func (u Unit) String() string {
	switch u {
	case UnitMinute:
		return "minute"
	case UnitHour:
		return "hour"
	default:
		return "second"
	}
}

// Match is a successfully parsed duration.
type Match struct {
	Seconds int    // total duration in seconds
	Unit    Unit   // unit the text used
	Matched string // the exact text that matched
}

type pattern struct {
	re   *regexp.Regexp
	unit Unit
}

// Strict patterns for recipe step text: an integer followed by a full
// unit word, hyphenated variants before spaced ones. The optional trailing
// "s" covers plurals.
var strictPatterns = []pattern{
	{regexp.MustCompile(`(?i)(\d+)-second`), UnitSecond},
	{regexp.MustCompile(`(?i)(\d+)\s*second`), UnitSecond},
	{regexp.MustCompile(`(?i)(\d+)-minute`), UnitMinute},
	{regexp.MustCompile(`(?i)(\d+)\s*minute`), UnitMinute},
	{regexp.MustCompile(`(?i)(\d+)-hour`), UnitHour},
	{regexp.MustCompile(`(?i)(\d+)\s*hour`), UnitHour},
}

// Loose patterns for short user corrections ("30 sec", "5 min", "2"). A
// bare integer is the lowest-priority fallback and is read as seconds.
var loosePatterns = []pattern{
	{regexp.MustCompile(`(?i)(\d+)\s*sec`), UnitSecond},
	{regexp.MustCompile(`(?i)(\d+)\s*min`), UnitMinute},
	{regexp.MustCompile(`(?i)(\d+)\s*hour`), UnitHour},
	{regexp.MustCompile(`(\d+)`), UnitSecond},
}

// Parser extracts wait durations from free-form text.
type Parser struct {
	log *logger.Logger
}

// NewParser creates a duration parser.
func NewParser(log *logger.Logger) *Parser {
	return &Parser{log: log}
}

// Parse scans recipe step text for a duration using the strict table.
// The boolean is false when no pattern matched; that is an expected
// outcome, not an error.
func (p *Parser) Parse(text string) (Match, bool) {
	return p.scan(strictPatterns, text)
}

// ParseLoose scans a short user-supplied correction using the loose table,
// falling back to bare-integer-as-seconds.
func (p *Parser) ParseLoose(text string) (Match, bool) {
	return p.scan(loosePatterns, text)
}

func (p *Parser) scan(table []pattern, text string) (Match, bool) {
	for _, pat := range table {
		m := pat.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// The capture group is all digits; only absurdly long
			// numbers can land here.
			continue
		}
		match := Match{
			Seconds: n * pat.unit.Seconds(),
			Unit:    pat.unit,
			Matched: m[0],
		}
		p.log.Debug("parsed %q as %d %ss (%d seconds)", m[0], n, pat.unit, match.Seconds)
		return match, true
	}
	p.log.Debug("no duration found in %q", text)
	return Match{}, false
}
