package manifest

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

var (
	compileOnce     sync.Once
	compiledSchemas map[string]*jsonschema.Schema
	compileErr      error
	printer         = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // dotted field path (e.g., "parameter_validation.query.min_length")
	Message string // human-readable error message
	Keyword string // schema keyword that failed
}

// schemaFiles maps entity kinds to their embedded schema resources.
var schemaFiles = map[string]string{
	KindAgent:   "schema/agent.schema.json",
	KindSkill:   "schema/skill.schema.json",
	KindCommand: "schema/command.schema.json",
}

// getSchema compiles all embedded schemas once and returns the one for kind.
func getSchema(kind string) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchemas = make(map[string]*jsonschema.Schema, len(schemaFiles))
		c := jsonschema.NewCompiler()
		for k, file := range schemaFiles {
			data, err := schemaFS.ReadFile(file)
			if err != nil {
				compileErr = fmt.Errorf("reading embedded schema %s: %w", file, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", file, err)
				return
			}
			if err := c.AddResource(file, doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", file, err)
				return
			}
			compiledSchemas[k], err = c.Compile(file)
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", file, err)
				return
			}
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	s, ok := compiledSchemas[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for entity kind %q", kind)
	}
	return s, nil
}

// ValidateHeader validates a raw header mapping against the schema for its
// kind. The error return is for schema compilation failures only; validation
// issues are returned in the ValidationResult.
func ValidateHeader(kind string, raw map[string]interface{}) (*ValidationResult, error) {
	schema, err := getSchema(kind)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	// Round-trip through JSON so the validator sees json.Number values
	// instead of YAML's native int/float types.
	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("converting header to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
// Validation is total: every violated keyword in the header yields its own
// issue, so one pass reports all defects in a file.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf
// errors with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := strings.Join(ve.InstanceLocation, ".")

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// normalizeYAML recursively converts YAML-decoded values to JSON-compatible
// types. yaml.v3 decodes mappings with non-string scalar keys to
// map[interface{}]interface{}, which encoding/json rejects.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[k] = normalizeYAML(item)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[fmt.Sprintf("%v", k)] = normalizeYAML(item)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, item := range val {
			a[i] = normalizeYAML(item)
		}
		return a
	default:
		return val
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
// Schema branches can surface the same leaf more than once; this is schema
// plumbing, not finding deduplication.
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
