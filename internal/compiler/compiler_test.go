package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"gotest.tools/v3/golden"
)

func init() {
	color.NoColor = true
}

// Conformance cases live in testdata/*.yaml: each pairs a Brain program
// with the diagnostics it must produce, in source order. An empty list
// means the program compiles clean.
type conformanceCase struct {
	Name   string          `yaml:"name"`
	Source string          `yaml:"source"`
	Errors []expectedError `yaml:"errors"`
}

type expectedError struct {
	Code string `yaml:"code"`
	Line int    `yaml:"line"` // 0 skips the line check
}

func TestConformance(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		data, err := os.ReadFile(file)
		require.NoError(t, err)

		var suite struct {
			Cases []conformanceCase `yaml:"cases"`
		}
		require.NoError(t, yaml.Unmarshal(data, &suite), "parsing %s", file)

		group := strings.TrimSuffix(filepath.Base(file), ".yaml")
		for _, tc := range suite.Cases {
			t.Run(group+"/"+tc.Name, func(t *testing.T) {
				result := Compile(&Options{EntryFile: "case.brn", Code: tc.Source})

				if len(tc.Errors) == 0 {
					assert.True(t, result.Success, "unexpected diagnostics:\n%s", result.Output)
					return
				}

				assert.False(t, result.Success)
				got := result.Context.Diagnostics.Diagnostics()
				require.Len(t, got, len(tc.Errors), "diagnostics:\n%s", result.Output)
				for i, want := range tc.Errors {
					assert.Equal(t, want.Code, got[i].Code, "diagnostic %d:\n%s", i, result.Output)
					if want.Line > 0 {
						require.NotNil(t, got[i].Location)
						assert.Equal(t, want.Line, got[i].Location.Start.Line, "diagnostic %d:\n%s", i, result.Output)
					}
				}
			})
		}
	}
}

func TestDiagnosticOutput(t *testing.T) {
	src := "fn main() {\n" +
		"\tlet s = \"hi\";\n" +
		"\tlet m = &mut s;\n" +
		"\tlet a = &s;\n" +
		"\tprint(b);\n" +
		"}\n"

	result := Compile(&Options{EntryFile: "demo.brn", Code: src})
	require.False(t, result.Success)
	golden.Assert(t, result.Output, "borrow_conflict.golden")
}

func TestCompileFromDisk(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.brn")
	writeFile(t, entry, "fn main() {\n\tprint(\"hi\");\n}\n")

	result := Compile(&Options{EntryFile: entry})
	assert.True(t, result.Success, "unexpected diagnostics:\n%s", result.Output)
	assert.Empty(t, result.Output)
}

func TestMissingEntryFile(t *testing.T) {
	entry := filepath.Join(t.TempDir(), "absent.brn")

	result := Compile(&Options{EntryFile: entry})
	require.False(t, result.Success)
	assert.Equal(t, "M0001", result.Context.Diagnostics.Diagnostics()[0].Code)
	assert.True(t, result.Context.Diagnostics.Fatal())
}

func TestImportMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib.brn"), "fn greet() {\n\tprint(\"hi\");\n}\n")
	entry := filepath.Join(dir, "main.brn")
	writeFile(t, entry, "import \"lib.brn\";\n\nfn main() {\n\tgreet();\n}\n")

	result := Compile(&Options{EntryFile: entry})
	assert.True(t, result.Success, "unexpected diagnostics:\n%s", result.Output)
}

func TestRepeatedImportMergesOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib.brn"), "fn greet() {}\n")
	entry := filepath.Join(dir, "main.brn")
	writeFile(t, entry, "import \"lib.brn\";\nimport \"lib.brn\";\n\nfn main() {\n\tgreet();\n}\n")

	// A second import of the same file must not redeclare its contents.
	result := Compile(&Options{EntryFile: entry})
	assert.True(t, result.Success, "unexpected diagnostics:\n%s", result.Output)
}

func TestImportCycleRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.brn"), "import \"b.brn\";\n\nfn main() {}\n")
	writeFile(t, filepath.Join(dir, "b.brn"), "import \"a.brn\";\n\nfn helper() {}\n")

	result := Compile(&Options{EntryFile: filepath.Join(dir, "a.brn")})
	require.False(t, result.Success)

	diags := result.Context.Diagnostics.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "M0002", diags[0].Code)
	assert.Contains(t, diags[0].Message, "import cycle")
}

func TestMissingImport(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.brn")
	writeFile(t, entry, "import \"nope.brn\";\n\nfn main() {}\n")

	result := Compile(&Options{EntryFile: entry})
	require.False(t, result.Success)

	diags := result.Context.Diagnostics.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "M0001", diags[0].Code)
	assert.Contains(t, diags[0].Hint, "looked for")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
