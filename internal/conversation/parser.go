package conversation

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// KeywordParser matches walkthrough input to intents using keywords and
// simple patterns. Swap this out for an LLM-backed parser when ready.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(next|done|continue|n|advance)$`), domain.IntentAdvance},
		{regexp.MustCompile(`(?i)^(repeat|again|what\??|r)$`), domain.IntentRepeat},
		{regexp.MustCompile(`(?i)^(status|where|progress|time|remaining)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(timer|start timer|set timer|ready)$`), domain.IntentStartTimer},
		{regexp.MustCompile(`(?i)^(quit|exit|stop|q)$`), domain.IntentQuit},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
	}
	return p
}

// Parse converts user input into an intent. Anything that is not a known
// command but contains a digit is handed back as a custom timer request;
// the loose duration parser decides whether it is usable.
func (p *KeywordParser) Parse(input string) *domain.Intent {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent}
		}
	}

	if strings.ContainsAny(trimmed, "0123456789") {
		return &domain.Intent{Type: domain.IntentCustomTimer, Payload: trimmed}
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}
}
