// Package cli defines the cobra command tree: validate (the main entry
// point), list, config, and version. Commands translate between the
// invocation surface and the loader/graph/semantics/report packages.
package cli
