// Package report collects validation findings, orders them deterministically,
// and maps the result to a process exit code and a text or JSON rendering.
package report
