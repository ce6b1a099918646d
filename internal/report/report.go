package report

import (
	"sort"
	"sync"
)

// Collector accumulates findings from all validation stages. It is safe for
// concurrent use so per-file parsing workers can emit findings directly;
// ordering is restored by Report before any output is produced.
type Collector struct {
	mu       sync.Mutex
	findings []Finding
	next     int
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records one finding, stamping it with the next detection sequence number.
func (c *Collector) Add(f Finding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f.seq = c.next
	c.next++
	c.findings = append(c.findings, f)
}

// Error is shorthand for adding an Error-severity finding.
func (c *Collector) Error(cat Category, path, message string) {
	c.Add(Finding{Severity: SeverityError, Category: cat, SubjectPath: path, Message: message})
}

// Warning is shorthand for adding a Warning-severity finding.
func (c *Collector) Warning(cat Category, path, message string) {
	c.Add(Finding{Severity: SeverityWarning, Category: cat, SubjectPath: path, Message: message})
}

// Len returns the number of findings collected so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.findings)
}

// Report is the final, ordered view of a validation run.
type Report struct {
	Findings []Finding `json:"findings"`
	ExitCode int       `json:"exitCode"`
}

// Build produces the report: findings sorted by subject path, then category,
// then original detection order, with the exit code derived from the fixed
// category table.
func (c *Collector) Build(strict bool) *Report {
	c.mu.Lock()
	findings := make([]Finding, len(c.findings))
	copy(findings, c.findings)
	c.mu.Unlock()

	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.SubjectPath != b.SubjectPath {
			return a.SubjectPath < b.SubjectPath
		}
		if a.Category != b.Category {
			return categoryRank[a.Category] < categoryRank[b.Category]
		}
		return a.seq < b.seq
	})

	return &Report{
		Findings: findings,
		ExitCode: ExitCode(findings, strict),
	}
}

// HasErrors reports whether any finding has Error severity.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any finding has Warning severity.
func (r *Report) HasWarnings() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			return true
		}
	}
	return false
}
