package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/funvibe/corecalc/internal/ast"
	"github.com/funvibe/corecalc/internal/config"
	"github.com/funvibe/corecalc/internal/document"
	"github.com/funvibe/corecalc/internal/pipeline"
	"github.com/funvibe/corecalc/internal/typesystem"
	"golang.org/x/sync/errgroup"
)

func checkPipeline() *pipeline.Pipeline {
	return pipeline.New(
		&pipeline.DecodeProcessor{},
		&pipeline.ScopeProcessor{},
		&pipeline.CheckProcessor{},
	)
}

func evalPipeline() *pipeline.Pipeline {
	return pipeline.New(
		&pipeline.DecodeProcessor{},
		&pipeline.ScopeProcessor{},
		&pipeline.CheckProcessor{},
		&pipeline.EvalProcessor{},
	)
}

func scopePipeline() *pipeline.Pipeline {
	return pipeline.New(
		&pipeline.DecodeProcessor{},
		&pipeline.ScopeProcessor{},
	)
}

func (a *app) handleCheck(path string) int {
	ctx := a.process(checkPipeline(), path, false)
	if ctx.Failed() {
		a.reportErrors(ctx)
		return 1
	}
	if ctx.CheckErr != nil {
		fmt.Fprintf(a.stderr, "%s: %s\n", a.paint(ansiRed, "error"), ctx.CheckErr)
		return 1
	}
	fmt.Fprintf(a.stdout, "%s: %s : %s\n", a.paint(ansiGreen, "ok"), ctx.Document.Expr.Expr, ctx.Expected)
	return 0
}

func (a *app) handleEval(path string) int {
	ctx := a.process(evalPipeline(), path, false)
	if ctx.Failed() {
		a.reportErrors(ctx)
		return 1
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintf(a.stderr, "%s: %s\n", a.paint(ansiRed, "error"), err)
		return 1
	}
	fmt.Fprintln(a.stdout, ctx.Value)
	return 0
}

func (a *app) handleKinds(path string) int {
	ctx := a.process(scopePipeline(), path, false)
	if ctx.Failed() {
		a.reportErrors(ctx)
		return 1
	}
	for _, kind := range typesystem.GetKinds(ctx.Expected) {
		fmt.Fprintf(a.stdout, "%-8s %s\n", kind, ast.Skeleton(kind))
	}
	return 0
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (a *app) handleDump(path string) int {
	doc, err := document.LoadDocument(path)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return 1
	}
	fmt.Fprintf(a.stdout, "type: %s\n", doc.Type.Expr)
	dumpConfig.Fdump(a.stdout, doc.Type.Expr)
	fmt.Fprintf(a.stdout, "expr: %s\n", doc.Expr.Expr)
	dumpConfig.Fdump(a.stdout, doc.Expr.Expr)
	return 0
}

// testResult is the verdict for one document.
type testResult struct {
	path   string
	passed bool
	errs   []error
}

func (a *app) handleTest(args []string) int {
	files, err := collectDocuments(args)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintln(a.stdout, "No test files found")
		return 0
	}

	results := make([]testResult, len(files))
	var g errgroup.Group
	g.SetLimit(a.cfg.Jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			ctx := a.process(pipeline.Default(), path, true)
			results[i] = testResult{path: path, passed: !ctx.Failed(), errs: ctx.Errors}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.passed {
			fmt.Fprintf(a.stdout, "%s %s\n", a.paint(ansiGreen, "PASS"), r.path)
			continue
		}
		failed++
		fmt.Fprintf(a.stdout, "%s %s\n", a.paint(ansiRed, "FAIL"), r.path)
		for _, err := range r.errs {
			fmt.Fprintf(a.stdout, "    %s\n", err)
		}
	}

	fmt.Fprintf(a.stdout, "\n%d passed, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return 1
	}
	return 0
}

// collectDocuments expands directories into the documents they contain,
// skipping config files. Explicitly named files are taken as given.
func collectDocuments(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory: %w", err)
		}
		var found []string
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || slices.Contains(config.ConfigFileNames, name) {
				continue
			}
			if slices.Contains(config.DocumentExtensions, filepath.Ext(name)) {
				found = append(found, filepath.Join(arg, name))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
