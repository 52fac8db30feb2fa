package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-no-color"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCheckCommand(t *testing.T) {
	code, out, errOut := runCLI("check", "testdata/add.yaml")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "ok: x + 2 : F64\n", out)

	code, _, errOut = runCLI("check", "testdata/mismatch.yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "error: type mismatch: Trivial vs F64")
}

func TestEvalCommand(t *testing.T) {
	code, out, errOut := runCLI("eval", "testdata/add.yaml")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "3\n", out)

	code, out, errOut = runCLI("eval", "testdata/let.yaml")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "sole\n", out)

	code, _, errOut = runCLI("eval", "testdata/unbound.yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unbound variable: y")
}

func TestKindsCommand(t *testing.T) {
	code, out, errOut := runCLI("kinds", "testdata/add.yaml")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Var")
	assert.Contains(t, out, "F64Lit   0")

	code, out, errOut = runCLI("kinds", "testdata/let.yaml")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Let      let(_, Trivial, sole)")
}

func TestDumpCommand(t *testing.T) {
	code, out, errOut := runCLI("dump", "testdata/add.yaml")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "type: F64")
	assert.Contains(t, out, "expr: x + 2")
	assert.Contains(t, out, "ast.Add")
}

func TestTestCommand(t *testing.T) {
	code, out, _ := runCLI("test", "testdata")
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "PASS testdata/add.yaml")
	assert.Contains(t, out, "7 passed, 0 failed")
	assert.NotContains(t, out, "FAIL")

	code, out, _ = runCLI("test", "testdata/failing")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "FAIL testdata/failing/wrong_value.yaml")
	assert.Contains(t, out, "expected value 3, got 2")
	assert.Contains(t, out, "0 passed, 1 failed")
}

func TestTestCommandUsesPrelude(t *testing.T) {
	code, out, _ := runCLI("test", "testdata/prelude")
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "PASS testdata/prelude/sum.yaml")
	assert.Contains(t, out, "1 passed, 0 failed")
}

func TestExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("prelude:\n  two:\n    type: F64\n    value: 2\n"), 0o644))
	doc := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("type: F64\nexpr: {Add: [two, two]}\n"), 0o644))

	code, out, errOut := runCLI("-config", cfg, "eval", doc)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "4\n", out)

	code, _, errOut = runCLI("eval", doc)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unbound variable: two")
}

func TestTraceFlag(t *testing.T) {
	code, _, errOut := runCLI("-trace", "eval", "testdata/add.yaml")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, errOut, "trace: check x + 2 : F64")
	assert.Contains(t, errOut, "trace: add 1 + 2 = 3")
}

func TestUsage(t *testing.T) {
	code, out, _ := runCLI()
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage: corecalc")

	code, out, _ = runCLI("help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Commands:")

	code, _, errOut := runCLI("frobnicate", "testdata/add.yaml")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Unknown command: frobnicate")

	code, _, errOut = runCLI("check")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Usage: corecalc check <file>")

	code, _, errOut = runCLI("-bogus", "check", "testdata/add.yaml")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown flag -bogus")

	code, _, errOut = runCLI("check", "testdata/missing.yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "reading testdata/missing.yaml")
}

func TestParseFlags(t *testing.T) {
	opts, rest, err := parseFlags([]string{"--config=x.yaml", "-trace", "check", "a.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "x.yaml", opts.configPath)
	assert.True(t, opts.trace)
	assert.False(t, opts.noColor)
	assert.Equal(t, []string{"check", "a.yaml"}, rest)

	_, _, err = parseFlags([]string{"-config"})
	assert.Error(t, err)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, useColor("auto", false, &buf))
	assert.True(t, useColor("always", false, &buf))
	assert.False(t, useColor("always", true, &buf))
	assert.False(t, useColor("never", false, &buf))
}
