package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ASTRALLIBERTAD/Brain/internal/source"
)

// SourceCache caches source file contents for error reporting.
type SourceCache struct {
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{files: make(map[string][]string)}
}

// AddSource registers source text for a file path.
func (sc *SourceCache) AddSource(filepath, content string) {
	sc.files[filepath] = splitLines(content)
}

// GetLine retrieves a specific 1-based line from a cached or on-disk file.
func (sc *SourceCache) GetLine(filepath string, line int) (string, bool) {
	lines, ok := sc.files[filepath]
	if !ok {
		loaded, err := source.GetSourceLines(filepath)
		if err != nil {
			return "", false
		}
		sc.files[filepath] = loaded
		lines = loaded
	}
	if line < 1 || line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	// A trailing newline should not produce a phantom empty line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// Emitter renders diagnostics in the fixed tooling format:
//
//	<file>:<line>:<column>: error: <message>
//	<offending source line>
//	<caret pointing at the column>
//	hint: <one line>          (optional)
type Emitter struct {
	cache  *SourceCache
	writer io.Writer
}

// NewEmitter creates an emitter that writes to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{cache: NewSourceCache(), writer: w}
}

func (e *Emitter) Emit(diag *Diagnostic) {
	severity := color.New(color.FgRed, color.Bold)
	if diag.Severity == Warning {
		severity = color.New(color.FgYellow, color.Bold)
	}

	if diag.Location == nil {
		fmt.Fprintf(e.writer, "%s: %s\n", severity.Sprint(diag.Severity.String()), diag.Message)
		e.printHint(diag)
		return
	}

	loc := diag.Location
	fmt.Fprintf(e.writer, "%s:%d:%d: %s: %s\n",
		loc.File, loc.Start.Line, loc.Start.Column,
		severity.Sprint(diag.Severity.String()), diag.Message)

	if line, ok := e.cache.GetLine(loc.File, loc.Start.Line); ok {
		fmt.Fprintln(e.writer, line)
		fmt.Fprintln(e.writer, caretLine(line, loc.Start.Column))
	}
	e.printHint(diag)
}

func (e *Emitter) printHint(diag *Diagnostic) {
	if diag.Hint != "" {
		fmt.Fprintf(e.writer, "hint: %s\n", diag.Hint)
	}
}

// caretLine builds the marker line under the source line. Tabs in the
// prefix are preserved so the caret lines up in terminals.
func caretLine(line string, column int) string {
	var b strings.Builder
	for i := 0; i < column-1 && i < len(line); i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	for b.Len() < column-1 {
		b.WriteByte(' ')
	}
	b.WriteByte('^')
	return b.String()
}
