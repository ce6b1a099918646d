package manifest

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// headerMarker delimits the header block. A manifest file starts with the
// marker on its first line and closes it with a second marker line; the
// YAML mapping between them is the header, everything after is the body.
const headerMarker = "---"

// SplitHeader extracts the header block and body from raw file content.
// found is false when the file carries no header block at all (a plain prose
// file, skipped by the loader). A header that is opened but never closed is
// an error: the file claims to be a manifest but is not well-formed.
func SplitHeader(content []byte) (header, body []byte, found bool, err error) {
	rest, ok := bytes.CutPrefix(content, []byte(headerMarker))
	if !ok {
		return nil, nil, false, nil
	}
	// Marker must be the whole first line.
	rest, ok = cutLineBreak(rest)
	if !ok {
		return nil, nil, false, nil
	}

	// Find the closing marker at the start of a line.
	end := -1
	for off := 0; ; {
		idx := bytes.Index(rest[off:], []byte("\n"+headerMarker))
		if idx < 0 {
			break
		}
		after := rest[off+idx+1+len(headerMarker):]
		if len(after) == 0 || after[0] == '\n' || after[0] == '\r' {
			end = off + idx
			break
		}
		off += idx + 1
	}
	if end < 0 {
		return nil, nil, true, fmt.Errorf("header block opened but never closed")
	}

	header = rest[:end+1]
	tail := rest[end+1+len(headerMarker):]
	if rem, ok := cutLineBreak(tail); ok {
		tail = rem
	}
	return header, tail, true, nil
}

// cutLineBreak removes a leading \n or \r\n. ok is false when the input does
// not start with a line break (ignoring nothing else).
func cutLineBreak(b []byte) ([]byte, bool) {
	if rest, ok := bytes.CutPrefix(b, []byte("\r\n")); ok {
		return rest, true
	}
	if rest, ok := bytes.CutPrefix(b, []byte("\n")); ok {
		return rest, true
	}
	if len(b) == 0 {
		return b, true
	}
	return b, false
}

// ParseRaw unmarshals header YAML into a generic mapping for schema
// validation and kind detection.
func ParseRaw(header []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(header, &raw); err != nil {
		return nil, fmt.Errorf("parsing header YAML: %w", err)
	}
	return raw, nil
}

// DetectKind extracts an explicit kind field from a raw header, if present.
func DetectKind(raw map[string]interface{}) (string, bool) {
	v, ok := raw["kind"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return s, true
}

// ParseHeader decodes header YAML into the typed struct for the given kind.
// The returned interface{} is one of *AgentHeader, *SkillHeader, or
// *CommandHeader.
func ParseHeader(kind string, header []byte) (interface{}, error) {
	switch kind {
	case KindAgent:
		return parseTyped[AgentHeader](header)
	case KindSkill:
		return parseTyped[SkillHeader](header)
	case KindCommand:
		return parseTyped[CommandHeader](header)
	default:
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
}

// parseTyped unmarshals header YAML into a typed header struct. Unknown
// fields are ignored, keeping the format forward-compatible.
func parseTyped[T any](header []byte) (*T, error) {
	var h T
	if err := yaml.Unmarshal(header, &h); err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}
	return &h, nil
}
