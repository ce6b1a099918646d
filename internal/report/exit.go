package report

// Process exit codes. The mapping from category to code is a fixed table so
// tooling consuming the exit code can rely on it across runs and versions.
const (
	ExitOK               = 0
	ExitValidationFailed = 1 // multiple Error categories, or strict-mode warnings
	ExitSchemaError      = 2
	ExitDuplicateName    = 3
	ExitBrokenBond       = 4
	ExitCircularDep      = 5
	ExitInvalidRetry     = 6
	ExitInvalidParamRule = 7
	ExitIOError          = 8
)

var categoryExit = map[Category]int{
	CategoryIOError:              ExitIOError,
	CategorySchemaError:          ExitSchemaError,
	CategoryDuplicateName:        ExitDuplicateName,
	CategoryBrokenBond:           ExitBrokenBond,
	CategoryCircularDependency:   ExitCircularDep,
	CategoryInvalidRetryConfig:   ExitInvalidRetry,
	CategoryInvalidParameterRule: ExitInvalidParamRule,
}

// ExitCode derives the process exit code from a set of findings.
//
// Warnings alone never fail the run unless strict is set. When Error findings
// exist in exactly one category, that category's dedicated code is returned;
// Errors spanning several categories collapse to the generic failure code.
func ExitCode(findings []Finding, strict bool) int {
	categories := make(map[Category]bool)
	warnings := false
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			categories[f.Category] = true
		case SeverityWarning:
			warnings = true
		}
	}

	if len(categories) == 0 {
		if strict && warnings {
			return ExitValidationFailed
		}
		return ExitOK
	}
	if len(categories) == 1 {
		for cat := range categories {
			if code, ok := categoryExit[cat]; ok {
				return code
			}
		}
	}
	return ExitValidationFailed
}
