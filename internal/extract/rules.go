package extract

import (
	"regexp"
	"strings"
)

// FieldRule is one independent matcher: a pure text -> (match, ok)
// function. Rules are evaluated in slice order and the first match
// wins, so precedence lives in the rule list, not in code flow.
type FieldRule struct {
	Name string
	re   *regexp.Regexp
}

// NewFieldRule compiles a rule with one capture group.
func NewFieldRule(name, pattern string) FieldRule {
	return FieldRule{Name: name, re: regexp.MustCompile(pattern)}
}

// Match returns the first capture group of the first match.
func (r FieldRule) Match(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}

// FulfillmentRule maps trigger phrases to a fulfillment type. Evaluated
// in slice order over the lowercased text; first rule with any phrase
// present wins even if a later rule's phrase also appears.
type FulfillmentRule struct {
	Phrases []string
	Type    Fulfillment
}

func (r FulfillmentRule) Matches(lowered string) bool {
	for _, p := range r.Phrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}
