// Package gen orchestrates the webiogen pre-build pass over a source tree:
// discover Go package directories, run the rewrite passes on each, and
// report or write the results. Each directory is one unit — entry-point
// rules are program-wide within it — and units are processed concurrently
// since they share nothing.
package gen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/webiokit/config"
	"github.com/randalmurphal/webiokit/diag"
	"github.com/randalmurphal/webiokit/rewrite"
)

// Mode selects what Run does with rewritten files.
type Mode uint8

const (
	// ModeList reports the files a write would change without touching
	// anything.
	ModeList Mode = iota
	// ModeWrite rewrites changed files in place, atomically.
	ModeWrite
)

// RunOptions configures one Run.
type RunOptions struct {
	Mode Mode

	// Concurrency bounds the number of units processed in parallel.
	// Zero means GOMAXPROCS.
	Concurrency int
}

// Unit is the result for one package directory.
type Unit struct {
	Dir string

	// Changed lists the files whose rewritten content differs from what
	// is on disk, relative to Dir.
	Changed []string

	// Written reports whether the changes were written back.
	Written bool
}

// Report aggregates a Run.
type Report struct {
	Units []Unit
	Diags diag.List
}

// Changed flattens the changed file paths of every unit.
func (r *Report) Changed() []string {
	var out []string
	for _, u := range r.Units {
		for _, name := range u.Changed {
			out = append(out, filepath.Join(u.Dir, name))
		}
	}
	return out
}

// Generator runs the pre-build pass with one configuration.
type Generator struct {
	cfg *config.Config
	log *slog.Logger
}

// New returns a Generator. A nil cfg means the zero-config defaults; a nil
// logger discards progress output.
func New(cfg *config.Config, logger *slog.Logger) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{cfg: cfg, log: logger}
}

// options builds the rewrite options from the configuration.
func (g *Generator) options() rewrite.Options {
	return rewrite.Options{
		TemplateImport: g.cfg.TemplateImport,
		RuntimeImport:  g.cfg.RuntimeImport,
		Aliases:        g.cfg.Aliases,
		Fold:           true,
		Entry:          true,
	}
}

// Run processes every package directory under the given roots. Units are
// independent and processed concurrently; results merge in sorted
// directory order regardless of completion order. A unit with diagnostics
// contributes them to the report and writes nothing. The returned error
// covers I/O and syntax failures, not diagnostics.
func (g *Generator) Run(ctx context.Context, roots []string, opts RunOptions) (*Report, error) {
	dirs, err := g.discover(roots)
	if err != nil {
		return nil, err
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	units := make([]Unit, len(dirs))
	unitDiags := make([]diag.List, len(dirs))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(limit)
	for i, dir := range dirs {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			unit, diags, err := g.processUnit(dir, opts.Mode)
			if err != nil {
				return err
			}
			units[i] = unit
			unitDiags[i] = diags
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Units: units}
	for _, diags := range unitDiags {
		report.Diags.Append(diags...)
	}
	report.Diags.Sort()
	return report, nil
}

// Check runs diagnostics only: no writes, no change listing beyond what
// the report carries.
func (g *Generator) Check(ctx context.Context, roots []string) (diag.List, error) {
	report, err := g.Run(ctx, roots, RunOptions{Mode: ModeList})
	if err != nil {
		return nil, err
	}
	return report.Diags, nil
}

// processUnit rewrites one package directory.
func (g *Generator) processUnit(dir string, mode Mode) (Unit, diag.List, error) {
	unit := Unit{Dir: dir}
	g.log.Debug("processing unit", "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return unit, nil, fmt.Errorf("read dir: %w", err)
	}

	r := rewrite.New(g.options())
	sources := make(map[string][]byte)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return unit, nil, fmt.Errorf("read source: %w", err)
		}
		if isGenerated(data) {
			continue
		}
		if err := r.AddFile(name, data); err != nil {
			return unit, nil, err
		}
		sources[name] = data
	}
	if len(sources) == 0 {
		return unit, nil, nil
	}

	outputs, diags := r.Rewrite()
	if len(diags) > 0 {
		for i := range diags {
			diags[i].Pos.Filename = filepath.Join(dir, diags[i].Pos.Filename)
		}
		g.log.Warn("unit has diagnostics", "dir", dir, "count", len(diags))
		return unit, diags, nil
	}

	for name, out := range outputs {
		if bytes.Equal(out, sources[name]) {
			continue
		}
		unit.Changed = append(unit.Changed, name)
	}
	sort.Strings(unit.Changed)

	if mode == ModeWrite && len(unit.Changed) > 0 {
		for _, name := range unit.Changed {
			target := filepath.Join(dir, name)
			if err := atomic.WriteFile(target, bytes.NewReader(outputs[name])); err != nil {
				return unit, nil, fmt.Errorf("write %s: %w", target, err)
			}
		}
		unit.Written = true
		g.log.Info("rewrote unit", "dir", dir, "files", len(unit.Changed))
	}
	return unit, nil, nil
}

// discover walks the roots and collects directories holding Go files,
// skipping hidden directories, testdata, vendor, and anything the
// configuration excludes. The result is sorted and deduplicated.
func (g *Generator) discover(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string

	for _, root := range roots {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != root && skipDirName(d.Name()) {
					return filepath.SkipDir
				}
				if g.excluded(root, p) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(d.Name(), ".go") {
				return nil
			}
			dir := filepath.Dir(p)
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// skipDirName reports directory names the walk never descends into.
func skipDirName(name string) bool {
	if name == "testdata" || name == "vendor" {
		return true
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// excluded matches a directory against the configured exclude patterns,
// by its path relative to the walk root.
func (g *Generator) excluded(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range g.cfg.Exclude {
		if ok, err := path.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// isGenerated reports whether src carries the generated-file marker on a
// line before the package clause, per the Go convention.
func isGenerated(src []byte) bool {
	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "package ") {
			return false
		}
		if strings.HasPrefix(trimmed, "// Code generated ") && strings.HasSuffix(trimmed, " DO NOT EDIT.") {
			return true
		}
	}
	return false
}
