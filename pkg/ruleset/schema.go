// Package ruleset holds the versioned registry of validation rules the
// validator runs. Severity and weights are data, so a rule-set revision can
// reclassify a finding without an engine change.
package ruleset

import "sync"

// Severity levels of a validation finding.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Rule describes one validation rule: identity, how findings against it are
// classified, and the remediation hint surfaced in detailed mode.
type Rule struct {
	ID          string `json:"id"`
	AppliesTo   string `json:"appliesTo,omitempty"`
	Severity    string `json:"severity"`
	Weight      int    `json:"weight,omitempty"`
	Platform    bool   `json:"platform,omitempty"`
	Mandatory   bool   `json:"mandatory,omitempty"`
	Description string `json:"description,omitempty"`
	Hint        string `json:"hint,omitempty"`
}

// Registry is a versioned rule set. Scoring is deterministic for a given
// registry version. Safe for concurrent lookups; Rules must not be mutated
// after the first lookup.
type Registry struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	Rules       []Rule `json:"rules"`

	indexOnce sync.Once
	byID      map[string]*Rule
}

// Get returns the rule with the given id.
func (r *Registry) Get(id string) (*Rule, bool) {
	r.indexOnce.Do(r.index)
	rule, ok := r.byID[id]
	return rule, ok
}

// PenaltyFor returns the score penalty of one finding against the rule. A
// mandatory rule penalizes at its escalated severity unless an explicit
// weight overrides it.
func (r *Registry) PenaltyFor(id string) int {
	rule, ok := r.Get(id)
	if !ok {
		return defaultWeight(SeverityWarning)
	}
	if rule.Weight > 0 {
		return rule.Weight
	}
	severity := rule.Severity
	if rule.Mandatory {
		severity = SeverityError
	}
	return defaultWeight(severity)
}

func (r *Registry) index() {
	r.byID = make(map[string]*Rule, len(r.Rules))
	for i := range r.Rules {
		r.byID[r.Rules[i].ID] = &r.Rules[i]
	}
}

func defaultWeight(severity string) int {
	switch severity {
	case SeverityError:
		return 15
	case SeverityWarning:
		return 5
	default:
		return 1
	}
}
