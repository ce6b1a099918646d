// Package graph builds the directed bond graph between agents, skills, and
// commands and runs the structural analyses over it: broken bonds, orphan
// skills, and circular dependencies. The graph is immutable once built and
// all analyses run single-threaded over the complete node and edge set.
package graph
