package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/bondcheck-labs/bondcheck/internal/manifest"
	"github.com/bondcheck-labs/bondcheck/internal/report"
)

// kindDirs maps recognized category directory names to entity kinds.
var kindDirs = map[string]string{
	"agents":   manifest.KindAgent,
	"skills":   manifest.KindSkill,
	"commands": manifest.KindCommand,
}

// maxParseWorkers bounds the per-file parse pool.
const maxParseWorkers = 8

// candidate is one discovered file, in walk order.
type candidate struct {
	absPath string
	relPath string // bundle-relative, slash-separated
	kindDir string // kind derived from the path, or ""
}

// fileResult is the outcome of parsing one candidate. Findings are held here
// until all workers finish, then emitted in discovery order so two runs over
// the same tree produce identical reports.
type fileResult struct {
	entity   *manifest.Entity
	findings []report.Finding
}

func (r *fileResult) errorf(cat report.Category, path, format string, args ...interface{}) {
	r.findings = append(r.findings, report.Finding{
		Severity:    report.SeverityError,
		Category:    cat,
		SubjectPath: path,
		Message:     fmt.Sprintf(format, args...),
	})
}

// Load discovers and parses all entity manifests under root. Per-file defects
// are recorded as findings on the collector; the returned entities are the
// graph-eligible ones in discovery order. The only error return is the root
// itself being unreadable, which is fatal for the whole run.
func Load(root string, c *report.Collector) ([]*manifest.Entity, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading bundle root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bundle root %s is not a directory", root)
	}

	candidates, err := discover(root)
	if err != nil {
		return nil, fmt.Errorf("walking bundle root %s: %w", root, err)
	}

	// Parse and schema-check files on a bounded worker pool. Each file is
	// independent; results land in a fixed slot per discovery index.
	results := make([]fileResult, len(candidates))
	workers := runtime.GOMAXPROCS(0)
	if workers > maxParseWorkers {
		workers = maxParseWorkers
	}
	var wg sync.WaitGroup
	jobs := make(chan int)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				parseFile(candidates[idx], &results[idx])
			}
		}()
	}
	for idx := range candidates {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	// Restore discovery order: emit findings and assemble entities exactly
	// as a sequential pass would have.
	var entities []*manifest.Entity
	seen := make(map[string]*manifest.Entity)
	for i := range results {
		res := &results[i]
		for _, f := range res.findings {
			c.Add(f)
		}
		e := res.entity
		if e == nil {
			continue
		}
		key := e.Kind + "/" + e.Name
		if first, dup := seen[key]; dup {
			c.Error(report.CategoryDuplicateName, e.SourcePath,
				fmt.Sprintf("%s %q already declared in %s", e.Kind, e.Name, first.SourcePath))
			continue
		}
		seen[key] = e
		entities = append(entities, e)
	}
	return entities, nil
}

// discover walks the tree and returns manifest candidates in lexical walk
// order. Only markdown files are considered; everything else is opaque
// bundle content.
func discover(root string) ([]candidate, error) {
	var out []candidate
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		out = append(out, candidate{
			absPath: path,
			relPath: rel,
			kindDir: kindFromPath(rel),
		})
		return nil
	})
	return out, err
}

// kindFromPath derives the entity kind from the nearest recognized ancestor
// directory in a bundle-relative path.
func kindFromPath(rel string) string {
	kind := ""
	parts := strings.Split(rel, "/")
	for _, seg := range parts[:len(parts)-1] {
		if k, ok := kindDirs[seg]; ok {
			kind = k
		}
	}
	return kind
}

// parseFile reads, splits, and validates one candidate file. It never fails
// the run: unreadable or malformed files become findings, prose files are
// skipped silently.
func parseFile(cand candidate, res *fileResult) {
	content, err := os.ReadFile(cand.absPath)
	if err != nil {
		res.errorf(report.CategoryIOError, cand.relPath, "reading file: %v", err)
		return
	}

	header, body, found, err := manifest.SplitHeader(content)
	if !found {
		return // plain prose, out of scope
	}
	if err != nil {
		res.errorf(report.CategorySchemaError, cand.relPath, "%v", err)
		return
	}

	raw, err := manifest.ParseRaw(header)
	if err != nil {
		// Not well-formed structured data: report and drop the entity
		// entirely so nothing downstream sees a half-parsed header.
		res.errorf(report.CategorySchemaError, cand.relPath, "%v", err)
		return
	}

	kind := cand.kindDir
	if explicit, ok := manifest.DetectKind(raw); ok {
		if !validKind(explicit) {
			res.errorf(report.CategorySchemaError, cand.relPath,
				"kind: unknown entity kind %q", explicit)
			return
		}
		kind = explicit
	}
	if kind == "" {
		return // frontmatter on a prose document, not an entity manifest
	}

	entity := &manifest.Entity{
		Kind:       kind,
		SourcePath: cand.relPath,
		Body:       string(body),
	}
	if name, ok := raw["name"].(string); ok {
		entity.Name = name
	}

	// Schema validation is total: all violations in the header surface in
	// one pass.
	result, err := manifest.ValidateHeader(kind, raw)
	if err != nil {
		res.errorf(report.CategorySchemaError, cand.relPath, "schema validation: %v", err)
		entity.SchemaBroken = true
	} else if !result.Valid {
		entity.SchemaBroken = true
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			res.errorf(report.CategorySchemaError, cand.relPath, "%s", msg)
		}
	}

	if v, ok := raw["version"].(string); ok && v != "" {
		if _, err := semver.NewVersion(v); err != nil {
			entity.SchemaBroken = true
			res.errorf(report.CategorySchemaError, cand.relPath,
				"version: %q is not a valid semantic version", v)
		}
	}

	typed, err := manifest.ParseHeader(kind, header)
	if err != nil {
		// Mistyped fields are already reported by schema validation with
		// precise paths; the entity stays in the graph by name only.
		entity.SchemaBroken = true
	} else {
		entity.Header = typed
	}

	// A nameless entity cannot participate in the graph, but its findings
	// stand.
	if entity.Name == "" {
		if !entity.SchemaBroken {
			res.errorf(report.CategorySchemaError, cand.relPath, "name: required field is missing")
		}
		return
	}
	res.entity = entity
}

func validKind(kind string) bool {
	for _, k := range manifest.ValidKinds {
		if k == kind {
			return true
		}
	}
	return false
}
