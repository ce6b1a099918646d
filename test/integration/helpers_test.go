//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to an isolated bundle for one test.
type testEnv struct {
	BundleDir string
}

// setupTestEnv creates an isolated bundle root under a temp directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{BundleDir: t.TempDir()}
}

// writeManifest writes one manifest file at rel under the bundle root.
func writeManifest(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(rel), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
}

// setupHealthyBundle populates a bundle with a reviewer agent, its bonded
// skill, and a release command.
func setupHealthyBundle(t *testing.T, root string) {
	t.Helper()

	writeManifest(t, root, "agents/reviewer.md", `---
name: reviewer
description: Reviews pull requests
version: "1.2.0"
model: large-context
tools: [read_file, run_tests]
skills: [commit-analyzer]
retry_config:
  max_attempts: 2
  backoff: fixed
---
# Reviewer

Reviews incoming pull requests commit by commit.
`)

	writeManifest(t, root, "skills/commit-analyzer.md", `---
name: commit-analyzer
description: Analyzes commit history
bonded_agent: reviewer
bond_type: PRIMARY_BOND
atomic_operations: [fetch_history, score_commits]
parameter_validation:
  query:
    type: string
    required: true
    min_length: 3
retry_logic:
  max_attempts: 3
  backoff: exponential
  initial_delay_ms: 250
exit_codes:
  ok: 0
  no_history: 4
---
Fetches and scores commit history for the reviewer.
`)

	writeManifest(t, root, "commands/release.md", `---
name: release
description: Cuts a release
allowed_tools: [git]
parameter_validation:
  tag:
    type: string
---
`)

	// Prose documents are part of real bundles and must be skipped silently.
	writeManifest(t, root, "README.md", "# Test bundle\n\nProse only.\n")
}
