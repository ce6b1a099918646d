package report

// Severity classifies how serious a finding is. Only Error findings make a
// validation run fail.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category identifies the defect class of a finding.
type Category string

const (
	CategoryIOError              Category = "IOError"
	CategorySchemaError          Category = "SchemaError"
	CategoryDuplicateName        Category = "DuplicateName"
	CategoryOrphanSkill          Category = "OrphanSkill"
	CategoryBrokenBond           Category = "BrokenBond"
	CategoryCircularDependency   Category = "CircularDependency"
	CategoryInvalidRetryConfig   Category = "InvalidRetryConfig"
	CategoryInvalidParameterRule Category = "InvalidParameterRule"
)

// categoryRank fixes the relative order of categories within one subject path
// so report output is stable across runs.
var categoryRank = map[Category]int{
	CategoryIOError:              0,
	CategorySchemaError:          1,
	CategoryDuplicateName:        2,
	CategoryOrphanSkill:          3,
	CategoryBrokenBond:           4,
	CategoryCircularDependency:   5,
	CategoryInvalidRetryConfig:   6,
	CategoryInvalidParameterRule: 7,
}

// Finding is one immutable defect record. Two independent causes of the same
// symptom produce two findings; nothing is deduplicated implicitly.
type Finding struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	// SubjectPath is the bundle-relative path of the manifest the finding is
	// about. Findings about whole-graph defects (cycles) use the path of the
	// first entity on the cycle.
	SubjectPath string `json:"path"`
	Message     string `json:"message"`

	// seq is the original detection order, assigned by the Collector. It is
	// the final sort tie-breaker and is not part of the rendered output.
	seq int
}
