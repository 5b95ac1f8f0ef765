// Package modules resolves import statements and merges every reachable
// file into one program tree before semantic analysis, so the analyzer
// itself never touches the filesystem.
//
// `import "x.brn";` loads the file relative to the importing file. Each
// file is merged exactly once (caching is by absolute path) and import
// cycles are rejected.
package modules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/lexer"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/parser"
)

type loader struct {
	diag     *diagnostics.DiagnosticBag
	loaded   map[string]bool // absolute path -> already merged
	visiting map[string]bool // absolute path -> on the current import chain
	merged   []ast.Node
}

// LoadProgram reads the entry file, resolves its imports recursively, and
// returns the merged program. Returns nil when the entry file itself
// cannot be read or parsed to a tree.
func LoadProgram(entryFile string, diag *diagnostics.DiagnosticBag) *ast.Program {
	content, err := os.ReadFile(entryFile)
	if err != nil {
		diag.AddFatal(
			diagnostics.NewError(fmt.Sprintf("cannot read '%s': %v", entryFile, err)).
				WithCode(diagnostics.ErrImportNotFound),
		)
		return nil
	}
	return LoadSource(entryFile, string(content), diag)
}

// LoadSource parses in-memory source as the entry file, resolving its
// imports relative to the given path.
func LoadSource(entryFile, code string, diag *diagnostics.DiagnosticBag) *ast.Program {
	l := &loader{
		diag:     diag,
		loaded:   make(map[string]bool),
		visiting: make(map[string]bool),
	}

	abs, err := filepath.Abs(entryFile)
	if err != nil {
		abs = entryFile
	}
	l.loaded[abs] = true
	l.visiting[abs] = true

	program := l.parse(entryFile, code)
	if program == nil {
		return nil
	}
	l.mergeNodes(entryFile, program.Nodes)
	delete(l.visiting, abs)

	program.Nodes = l.merged
	return program
}

func (l *loader) parse(path, content string) *ast.Program {
	l.diag.AddSourceContent(path, content)
	toks := lexer.New(path, content, l.diag).Tokenize()
	return parser.Parse(toks, path, l.diag)
}

// mergeNodes appends a file's declarations, splicing each import's
// declarations in ahead of the declarations that follow it.
func (l *loader) mergeNodes(importer string, nodes []ast.Node) {
	for _, node := range nodes {
		imp, ok := node.(*ast.ImportDecl)
		if !ok {
			l.merged = append(l.merged, node)
			continue
		}
		l.loadImport(importer, imp)
	}
}

func (l *loader) loadImport(importer string, imp *ast.ImportDecl) {
	target := filepath.Join(filepath.Dir(importer), imp.Path)
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}

	if l.visiting[abs] {
		l.diag.Add(
			diagnostics.NewError(fmt.Sprintf("import cycle through '%s'", imp.Path)).
				WithCode(diagnostics.ErrImportCycle).
				WithLocation(imp.Loc()),
		)
		return
	}
	if l.loaded[abs] {
		return
	}
	l.loaded[abs] = true

	content, err := os.ReadFile(target)
	if err != nil {
		l.diag.Add(
			diagnostics.NewError(fmt.Sprintf("cannot find module '%s'", imp.Path)).
				WithCode(diagnostics.ErrImportNotFound).
				WithLocation(imp.Loc()).
				WithHint(fmt.Sprintf("looked for '%s'", target)),
		)
		return
	}

	program := l.parse(target, string(content))
	if program == nil {
		return
	}
	l.visiting[abs] = true
	l.mergeNodes(target, program.Nodes)
	delete(l.visiting, abs)
}
