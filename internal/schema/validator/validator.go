// Package validator assesses an assembled SchemaPackage for structural
// correctness and search platform compatibility. It never mutates its input.
package validator

import (
	"fmt"

	"schema-engine/internal/common/metrics"
	"schema-engine/internal/schema/schematype"
	"schema-engine/pkg/ruleset"
)

// Finding is one reported observation. Findings are values, never errors; a
// package full of error findings still validates to a complete result.
type Finding struct {
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Path     string `json:"path"`
	Hint     string `json:"hint,omitempty"`
}

// Counts aggregates findings per severity.
type Counts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// ValidationResult is the scored report over one package.
type ValidationResult struct {
	Valid          bool      `json:"valid"`
	Score          int       `json:"score"`
	RulesetVersion string    `json:"rulesetVersion"`
	Counts         Counts    `json:"counts"`
	Findings       []Finding `json:"findings"`
}

// Validator runs the configured rule set over packages. Safe for concurrent
// use; it holds no per-run state.
type Validator struct {
	reg      *ruleset.Registry
	strict   bool
	detailed bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithStrictPlatformCheck enables the search-engine rule set.
func WithStrictPlatformCheck(on bool) Option {
	return func(v *Validator) { v.strict = on }
}

// WithDetailedFindings toggles per-finding rule ids and remediation hints.
// When off the result carries counts only.
func WithDetailedFindings(on bool) Option {
	return func(v *Validator) { v.detailed = on }
}

func New(reg *ruleset.Registry, opts ...Option) *Validator {
	if reg == nil {
		reg = ruleset.Default()
	}
	v := &Validator{reg: reg, detailed: true}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate produces the scored report for a package. Deterministic: the same
// package and rule-set version always yield the identical result.
func (v *Validator) Validate(pkg *schematype.SchemaPackage) *ValidationResult {
	var findings []Finding

	for i := range pkg.Documents {
		doc := &pkg.Documents[i]
		path := fmt.Sprintf("schemas[%d]", i)

		findings = append(findings, v.checkStructure(doc, path)...)

		switch doc.Type {
		case schematype.TypeProduct:
			findings = append(findings, v.checkProduct(doc, path)...)
		case schematype.TypeOrganization:
			findings = append(findings, v.checkOrganization(doc, path)...)
		case schematype.TypeBreadcrumbList:
			findings = append(findings, v.checkBreadcrumb(doc, path)...)
		case schematype.TypeFAQPage:
			findings = append(findings, v.checkFAQ(doc, path)...)
		case schematype.TypeAggregateRating:
			findings = append(findings, v.checkRating(doc, path)...)
		}
	}

	result := &ValidationResult{
		Valid:          true,
		Score:          100,
		RulesetVersion: v.reg.Version,
	}

	penalty := 0
	for _, f := range findings {
		penalty += v.reg.PenaltyFor(f.Rule)
		switch f.Severity {
		case ruleset.SeverityError:
			result.Counts.Errors++
			result.Valid = false
		case ruleset.SeverityWarning:
			result.Counts.Warnings++
		default:
			result.Counts.Infos++
		}
		metrics.ValidationFindings.WithLabelValues(f.Severity).Inc()
	}

	result.Score -= penalty
	if result.Score < 0 {
		result.Score = 0
	}

	if v.detailed {
		result.Findings = findings
	}

	return result
}

// finding classifies one observation using the registry. A platform rule
// marked mandatory escalates to an error regardless of its listed severity.
func (v *Validator) finding(ruleID, message, path string) Finding {
	severity := ruleset.SeverityWarning
	hint := ""
	if rule, ok := v.reg.Get(ruleID); ok {
		severity = rule.Severity
		if rule.Mandatory {
			severity = ruleset.SeverityError
		}
		hint = rule.Hint
	}
	f := Finding{
		Severity: severity,
		Rule:     ruleID,
		Message:  message,
		Path:     path,
	}
	if v.detailed {
		f.Hint = hint
	}
	return f
}

// platformEnabled reports whether a platform rule participates in this run.
func (v *Validator) platformEnabled(ruleID string) bool {
	if !v.strict {
		return false
	}
	rule, ok := v.reg.Get(ruleID)
	return ok && rule.Platform
}
