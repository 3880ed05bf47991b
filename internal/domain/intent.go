package domain

// IntentType classifies what the user wants to do during a walkthrough.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentAdvance
	IntentRepeat
	IntentStatus
	IntentStartTimer
	IntentCustomTimer
	IntentQuit
	IntentHelp
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentAdvance:
		return "advance"
	case IntentRepeat:
		return "repeat"
	case IntentStatus:
		return "status"
	case IntentStartTimer:
		return "start_timer"
	case IntentCustomTimer:
		return "custom_timer"
	case IntentQuit:
		return "quit"
	case IntentHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. the duration text for a custom timer
}
