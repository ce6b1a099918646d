package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestBuild_Ordering(t *testing.T) {
	c := NewCollector()
	// Deliberately out of order: later paths and categories first.
	c.Error(CategoryBrokenBond, "skills/z.md", "z bond")
	c.Warning(CategoryOrphanSkill, "skills/a.md", "a orphan")
	c.Error(CategorySchemaError, "skills/a.md", "a schema")
	c.Error(CategorySchemaError, "agents/m.md", "m schema")

	r := c.Build(false)
	var got []string
	for _, f := range r.Findings {
		got = append(got, f.SubjectPath+":"+string(f.Category))
	}
	want := []string{
		"agents/m.md:" + string(CategorySchemaError),
		"skills/a.md:" + string(CategorySchemaError),
		"skills/a.md:" + string(CategoryOrphanSkill),
		"skills/z.md:" + string(CategoryBrokenBond),
	}
	if len(got) != len(want) {
		t.Fatalf("findings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("findings[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBuild_StableWithinCategory(t *testing.T) {
	// Two findings with the same path and category keep detection order.
	c := NewCollector()
	c.Error(CategorySchemaError, "agents/a.md", "first")
	c.Error(CategorySchemaError, "agents/a.md", "second")
	r := c.Build(false)
	if r.Findings[0].Message != "first" || r.Findings[1].Message != "second" {
		t.Errorf("detection order not preserved: %+v", r.Findings)
	}
}

func TestExitCode(t *testing.T) {
	err := func(cat Category) Finding {
		return Finding{Severity: SeverityError, Category: cat}
	}
	warn := func(cat Category) Finding {
		return Finding{Severity: SeverityWarning, Category: cat}
	}

	tests := []struct {
		name     string
		findings []Finding
		strict   bool
		want     int
	}{
		{"no findings", nil, false, ExitOK},
		{"warnings only", []Finding{warn(CategoryOrphanSkill)}, false, ExitOK},
		{"warnings only strict", []Finding{warn(CategoryOrphanSkill)}, true, ExitValidationFailed},
		{"schema errors", []Finding{err(CategorySchemaError)}, false, ExitSchemaError},
		{"duplicate name", []Finding{err(CategoryDuplicateName)}, false, ExitDuplicateName},
		{"broken bond", []Finding{err(CategoryBrokenBond)}, false, ExitBrokenBond},
		{"circular dependency", []Finding{err(CategoryCircularDependency)}, false, ExitCircularDep},
		{"invalid retry", []Finding{err(CategoryInvalidRetryConfig)}, false, ExitInvalidRetry},
		{"invalid parameter rule", []Finding{err(CategoryInvalidParameterRule)}, false, ExitInvalidParamRule},
		{"io error", []Finding{err(CategoryIOError)}, false, ExitIOError},
		{
			"mixed error categories",
			[]Finding{err(CategorySchemaError), err(CategoryBrokenBond)},
			false,
			ExitValidationFailed,
		},
		{
			"one error category plus warnings",
			[]Finding{err(CategoryBrokenBond), warn(CategoryOrphanSkill)},
			false,
			ExitBrokenBond,
		},
		{
			"repeated findings in one category",
			[]Finding{err(CategorySchemaError), err(CategorySchemaError)},
			false,
			ExitSchemaError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.findings, tt.strict); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReport_HasErrorsHasWarnings(t *testing.T) {
	c := NewCollector()
	c.Warning(CategoryOrphanSkill, "skills/s.md", "orphan")
	r := c.Build(false)
	if r.HasErrors() {
		t.Error("HasErrors = true for warnings-only report")
	}
	if !r.HasWarnings() {
		t.Error("HasWarnings = false, want true")
	}
	if r.ExitCode != ExitOK {
		t.Errorf("ExitCode = %d, want 0", r.ExitCode)
	}
}

func TestRender_Text(t *testing.T) {
	c := NewCollector()
	c.Error(CategoryBrokenBond, "skills/s.md", "skill bonds to unknown agent")
	var buf bytes.Buffer
	if err := c.Build(false).Render(&buf, FormatText); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	line := buf.String()
	for _, part := range []string{"error", string(CategoryBrokenBond), "skills/s.md", "unknown agent"} {
		if !strings.Contains(line, part) {
			t.Errorf("output %q missing %q", line, part)
		}
	}
}

func TestRender_JSON(t *testing.T) {
	c := NewCollector()
	c.Error(CategorySchemaError, "agents/a.md", "missing description")
	var buf bytes.Buffer
	if err := c.Build(false).Render(&buf, FormatJSON); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	var decoded struct {
		Findings []struct {
			Severity string `json:"severity"`
			Category string `json:"category"`
			Path     string `json:"path"`
			Message  string `json:"message"`
		} `json:"findings"`
		ExitCode int `json:"exitCode"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded.Findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(decoded.Findings))
	}
	f := decoded.Findings[0]
	if f.Severity != "error" || f.Path != "agents/a.md" || f.Message == "" {
		t.Errorf("finding = %+v", f)
	}
	if decoded.ExitCode != ExitSchemaError {
		t.Errorf("exitCode = %d, want %d", decoded.ExitCode, ExitSchemaError)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCollector().Build(false).Render(&buf, "xml"); err == nil {
		t.Fatal("expected error for unknown format, got nil")
	}
}

func TestRender_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCollector().Build(false).Render(&buf, FormatText); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty report produced output: %q", buf.String())
	}
}
