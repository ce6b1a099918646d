package manifest

import (
	"strings"
	"testing"
)

func TestSplitHeader(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantFound  bool
		wantErr    bool
		wantHeader string
		wantBody   string
	}{
		{
			name:       "header and body",
			content:    "---\nname: a\n---\nSome prose.\n",
			wantFound:  true,
			wantHeader: "name: a\n",
			wantBody:   "Some prose.\n",
		},
		{
			name:       "header at end of file",
			content:    "---\nname: a\n---",
			wantFound:  true,
			wantHeader: "name: a\n",
			wantBody:   "",
		},
		{
			name:       "crlf line endings",
			content:    "---\r\nname: a\r\n---\r\nbody\r\n",
			wantFound:  true,
			wantHeader: "name: a\r\n",
			wantBody:   "body\r\n",
		},
		{
			name:      "plain prose",
			content:   "# Just a document\n\nNo header here.\n",
			wantFound: false,
		},
		{
			name:      "horizontal rule is not a header",
			content:   "----\ntext\n",
			wantFound: false,
		},
		{
			name:      "unterminated header",
			content:   "---\nname: a\nno closing marker\n",
			wantFound: true,
			wantErr:   true,
		},
		{
			name:       "dashes inside header values",
			content:    "---\nname: a\nnote: |\n  ----\n---\nbody\n",
			wantFound:  true,
			wantHeader: "name: a\nnote: |\n  ----\n",
			wantBody:   "body\n",
		},
		{
			name:      "empty file",
			content:   "",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, found, err := SplitHeader([]byte(tt.content))
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil || !found {
				return
			}
			if string(header) != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

const skillHeaderYAML = `name: commit-analyzer
description: Analyzes commit history
version: "2.1.0"
bonded_agent: reviewer
bond_type: PRIMARY_BOND
atomic_operations:
  - fetch_history
  - score_commits
parameter_validation:
  query:
    type: string
    required: true
    min_length: 3
  limit:
    type: number
    maximum: 100
retry_logic:
  max_attempts: 3
  backoff: exponential
  initial_delay_ms: 250
exit_codes:
  ok: 0
  no_history: 4
`

func TestParseHeader_Skill(t *testing.T) {
	parsed, err := ParseHeader(KindSkill, []byte(skillHeaderYAML))
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	h, ok := parsed.(*SkillHeader)
	if !ok {
		t.Fatalf("expected *SkillHeader, got %T", parsed)
	}
	if h.Name != "commit-analyzer" {
		t.Errorf("Name = %q, want %q", h.Name, "commit-analyzer")
	}
	if h.BondedAgent != "reviewer" {
		t.Errorf("BondedAgent = %q, want %q", h.BondedAgent, "reviewer")
	}
	if h.BondType != BondPrimary {
		t.Errorf("BondType = %q, want %q", h.BondType, BondPrimary)
	}
	if len(h.AtomicOperations) != 2 {
		t.Errorf("AtomicOperations len = %d, want 2", len(h.AtomicOperations))
	}
	query, ok := h.ParameterValidation["query"]
	if !ok {
		t.Fatal("missing parameter rule for query")
	}
	if query.Type != ParamString || !query.Required {
		t.Errorf("query rule = %+v, want required string", query)
	}
	if query.MinLength == nil || *query.MinLength != 3 {
		t.Errorf("query.MinLength = %v, want 3", query.MinLength)
	}
	limit := h.ParameterValidation["limit"]
	if limit.Maximum == nil || *limit.Maximum != 100 {
		t.Errorf("limit.Maximum = %v, want 100", limit.Maximum)
	}
	if h.RetryLogic == nil || h.RetryLogic.MaxAttempts != 3 || h.RetryLogic.Backoff != BackoffExponential {
		t.Errorf("RetryLogic = %+v, want 3 attempts exponential", h.RetryLogic)
	}
	if h.ExitCodes["no_history"] != 4 {
		t.Errorf("ExitCodes[no_history] = %d, want 4", h.ExitCodes["no_history"])
	}
}

func TestParseHeader_Agent(t *testing.T) {
	header := `name: reviewer
description: Reviews pull requests
model: large-context
tools: [read_file, run_tests]
skills:
  - commit-analyzer
  - diff-summarizer
retry_config:
  max_attempts: 2
  backoff: fixed
error_handling:
  errors: [timeout, tool_failure]
  fallback: escalate
`
	parsed, err := ParseHeader(KindAgent, []byte(header))
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	h, ok := parsed.(*AgentHeader)
	if !ok {
		t.Fatalf("expected *AgentHeader, got %T", parsed)
	}
	if h.Model != "large-context" {
		t.Errorf("Model = %q, want %q", h.Model, "large-context")
	}
	if len(h.Skills) != 2 || h.Skills[0] != "commit-analyzer" {
		t.Errorf("Skills = %v, want [commit-analyzer diff-summarizer]", h.Skills)
	}
	if h.RetryConfig == nil || h.RetryConfig.Backoff != BackoffFixed {
		t.Errorf("RetryConfig = %+v, want fixed backoff", h.RetryConfig)
	}
	if h.ErrorHandling == nil || h.ErrorHandling.Fallback != "escalate" {
		t.Errorf("ErrorHandling = %+v, want fallback escalate", h.ErrorHandling)
	}
}

func TestParseHeader_Command(t *testing.T) {
	header := `name: release
description: Cuts a release
allowed_tools: [git, gh]
exit_codes:
  ok: 0
`
	parsed, err := ParseHeader(KindCommand, []byte(header))
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	h, ok := parsed.(*CommandHeader)
	if !ok {
		t.Fatalf("expected *CommandHeader, got %T", parsed)
	}
	if len(h.AllowedTools) != 2 {
		t.Errorf("AllowedTools = %v, want 2 entries", h.AllowedTools)
	}
}

func TestParseHeader_UnknownKind(t *testing.T) {
	_, err := ParseHeader("widget", []byte("name: x\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown entity kind") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestParseHeader_IgnoresUnknownFields(t *testing.T) {
	header := "name: x\ndescription: y\nfuture_field: whatever\n"
	parsed, err := ParseHeader(KindCommand, []byte(header))
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	if parsed.(*CommandHeader).Name != "x" {
		t.Error("known fields should still decode alongside unknown ones")
	}
}

func TestDetectKind(t *testing.T) {
	raw, err := ParseRaw([]byte("kind: agent\nname: x\n"))
	if err != nil {
		t.Fatalf("ParseRaw error: %v", err)
	}
	kind, ok := DetectKind(raw)
	if !ok || kind != KindAgent {
		t.Errorf("DetectKind = %q, %v; want agent, true", kind, ok)
	}

	raw, _ = ParseRaw([]byte("name: x\n"))
	if _, ok := DetectKind(raw); ok {
		t.Error("DetectKind should report absence of kind field")
	}
}

func TestParseRaw_Malformed(t *testing.T) {
	if _, err := ParseRaw([]byte("name: [unclosed\n")); err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
}
