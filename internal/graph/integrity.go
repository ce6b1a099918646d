package graph

import (
	"fmt"

	"github.com/bondcheck-labs/bondcheck/internal/manifest"
	"github.com/bondcheck-labs/bondcheck/internal/report"
)

// CheckIntegrity reports broken bonds and orphan skills.
//
// A broken bond is any edge whose target name does not exist as a node of the
// matching kind. An orphan skill is a skill no agent lists in its skills and
// which itself declares no bonded agent: referenced by nobody, bonding to
// nobody.
func (g *Graph) CheckIntegrity(c *report.Collector) {
	// Broken bonds, in edge insertion order.
	for _, e := range g.Edges {
		if g.resolve(e) != nil {
			continue
		}
		switch e.Kind {
		case EdgeBond:
			c.Error(report.CategoryBrokenBond, e.SourcePath,
				fmt.Sprintf("bonded_agent: skill %q bonds to unknown agent %q", e.FromName, e.ToName))
		case EdgeDeclares:
			c.Error(report.CategoryBrokenBond, e.SourcePath,
				fmt.Sprintf("skills: agent %q declares unknown skill %q", e.FromName, e.ToName))
		}
	}

	// Orphan skills, in node insertion order.
	declared := make(map[string]bool) // skill names with an inbound declares edge
	bonding := make(map[string]bool)  // skill names with an outbound bond edge
	for _, e := range g.Edges {
		switch e.Kind {
		case EdgeDeclares:
			declared[e.ToName] = true
		case EdgeBond:
			bonding[e.FromName] = true
		}
	}
	for _, n := range g.Nodes {
		if n.Kind != manifest.KindSkill {
			continue
		}
		if declared[n.Name] || bonding[n.Name] {
			continue
		}
		c.Warning(report.CategoryOrphanSkill, n.SourcePath,
			fmt.Sprintf("skill %q is not listed by any agent and declares no bond", n.Name))
	}
}
