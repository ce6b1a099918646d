// Package manifest handles parsing and schema validation of plugin entity
// manifests. A manifest is a markdown document opening with a "---" delimited
// YAML header; the header is decoded into one of three typed forms (agent,
// skill, command) and checked against the JSON Schema embedded for its kind.
// The prose after the header is carried as opaque body text.
package manifest
