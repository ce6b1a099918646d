// Package semantics validates the cross-field invariants inside retry and
// parameter-validation blocks that a plain type check cannot express.
package semantics

import (
	"fmt"
	"sort"

	"github.com/bondcheck-labs/bondcheck/internal/manifest"
	"github.com/bondcheck-labs/bondcheck/internal/report"
)

// Check runs config semantics validation over all loaded entities. It covers
// every retry config and parameter rule, including those in entities that
// already carry schema findings.
func Check(entities []*manifest.Entity, c *report.Collector) {
	for _, e := range entities {
		switch h := e.Header.(type) {
		case *manifest.AgentHeader:
			checkRetry(h.RetryConfig, "retry_config", e.SourcePath, c)
		case *manifest.SkillHeader:
			checkRetry(h.RetryLogic, "retry_logic", e.SourcePath, c)
			checkParams(h.ParameterValidation, e.SourcePath, c)
		case *manifest.CommandHeader:
			checkParams(h.ParameterValidation, e.SourcePath, c)
		}
	}
}

// checkRetry enforces the retry invariants: at least one attempt, a known
// backoff strategy, a non-negative initial delay, and a strictly positive
// delay when the delay grows exponentially.
func checkRetry(rc *manifest.RetryConfig, field, path string, c *report.Collector) {
	if rc == nil {
		return
	}
	if rc.MaxAttempts < 1 {
		c.Error(report.CategoryInvalidRetryConfig, path,
			fmt.Sprintf("%s.max_attempts: must be at least 1, got %d", field, rc.MaxAttempts))
	}
	switch rc.Backoff {
	case manifest.BackoffFixed, manifest.BackoffExponential:
	default:
		c.Error(report.CategoryInvalidRetryConfig, path,
			fmt.Sprintf("%s.backoff: unknown strategy %q (want fixed or exponential)", field, rc.Backoff))
	}
	if rc.InitialDelayMs < 0 {
		c.Error(report.CategoryInvalidRetryConfig, path,
			fmt.Sprintf("%s.initial_delay_ms: must not be negative, got %d", field, rc.InitialDelayMs))
	}
	if rc.Backoff == manifest.BackoffExponential && rc.InitialDelayMs <= 0 {
		c.Error(report.CategoryInvalidRetryConfig, path,
			fmt.Sprintf("%s.initial_delay_ms: must be positive when backoff is exponential, got %d",
				field, rc.InitialDelayMs))
	}
}

// checkParams enforces that refinement constraints are compatible with the
// declared parameter type. Rules are checked in parameter name order so the
// report is stable.
func checkParams(rules map[string]manifest.ParameterRule, path string, c *report.Collector) {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rule := rules[name]
		prefix := "parameter_validation." + name

		if rule.MinLength != nil && rule.Type != manifest.ParamString {
			c.Error(report.CategoryInvalidParameterRule, path,
				fmt.Sprintf("%s.min_length: only valid for type string, not %q", prefix, rule.Type))
		}
		if rule.Maximum != nil && rule.Type != manifest.ParamNumber {
			c.Error(report.CategoryInvalidParameterRule, path,
				fmt.Sprintf("%s.maximum: only valid for type number, not %q", prefix, rule.Type))
		}
		if rule.MinLength != nil && *rule.MinLength < 0 {
			c.Error(report.CategoryInvalidParameterRule, path,
				fmt.Sprintf("%s.min_length: must not be negative, got %d", prefix, *rule.MinLength))
		}
		if rule.AllowedValues != nil && len(rule.AllowedValues) == 0 {
			c.Error(report.CategoryInvalidParameterRule, path,
				fmt.Sprintf("%s.allowed_values: must not be empty when present", prefix))
		}
	}
}
