// Package loader discovers entity manifests in a bundle directory tree,
// parses their header blocks concurrently, and applies per-kind schema
// validation. Defects never abort the run; they become findings and the
// remaining files are still processed.
package loader
