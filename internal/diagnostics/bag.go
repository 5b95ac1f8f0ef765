package diagnostics

import (
	"bytes"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/fatih/color"
)

// DiagnosticBag collects diagnostics during compilation. Both checker
// families accumulate here instead of aborting, so a single run surfaces
// every independent problem. Structural errors that make further analysis
// meaningless are marked fatal and stop the walk.
type DiagnosticBag struct {
	mu          sync.Mutex
	diagnostics []*Diagnostic
	errorCount  int
	warnCount   int
	fatal       bool
	sources     *SourceCache
}

// NewDiagnosticBag creates an empty diagnostic bag.
func NewDiagnosticBag() *DiagnosticBag {
	return &DiagnosticBag{sources: NewSourceCache()}
}

// AddSourceContent registers in-memory source text for a file path so the
// emitter can show offending lines without touching the filesystem.
func (db *DiagnosticBag) AddSourceContent(filepath, content string) {
	db.sources.AddSource(filepath, content)
}

// Add appends a diagnostic to the bag.
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diagnostics = append(db.diagnostics, diag)
	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

// AddFatal appends a structural diagnostic and marks analysis as aborted.
func (db *DiagnosticBag) AddFatal(diag *Diagnostic) {
	db.Add(diag)
	db.mu.Lock()
	db.fatal = true
	db.mu.Unlock()
}

// Fatal reports whether a structural error has stopped analysis.
func (db *DiagnosticBag) Fatal() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.fatal
}

// HasErrors returns true if any error diagnostics were collected.
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

// ErrorCount returns the number of error diagnostics.
func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

// Diagnostics returns a copy of the collected diagnostics sorted by
// source location (file, line, column). Diagnostics without a location
// sort first.
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	result := make([]*Diagnostic, len(db.diagnostics))
	copy(result, db.diagnostics)
	db.mu.Unlock()

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Location, result[j].Location
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		return a.Before(b)
	})
	return result
}

// EmitAll renders every diagnostic to stderr in source order.
func (db *DiagnosticBag) EmitAll() {
	db.emit(os.Stderr)
}

// EmitAllToString renders every diagnostic to a string. Coloring follows
// the global color settings, so tests get plain text.
func (db *DiagnosticBag) EmitAllToString() string {
	var buf bytes.Buffer
	db.emit(&buf)
	return buf.String()
}

func (db *DiagnosticBag) emit(w io.Writer) {
	emitter := &Emitter{cache: db.sources, writer: w}
	for _, diag := range db.Diagnostics() {
		emitter.Emit(diag)
	}
	db.printSummary(w)
}

func (db *DiagnosticBag) printSummary(w io.Writer) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.errorCount > 0 {
		color.New(color.FgRed).Fprintf(w, "compilation failed with %d error(s)\n", db.errorCount)
	}
}

// Clear removes all diagnostics.
func (db *DiagnosticBag) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.diagnostics = nil
	db.errorCount = 0
	db.warnCount = 0
	db.fatal = false
}
