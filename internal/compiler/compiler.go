// Package compiler orchestrates the front-end pipeline: lexing, parsing,
// import resolution, declaration collection, type checking, and ownership
// tracking. The pipeline ends with the type-annotated program; code
// generation consumes it separately.
package compiler

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/ASTRALLIBERTAD/Brain/internal/context"
	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/modules"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/collector"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/ownership"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/typechecker"
)

// Options for compilation.
type Options struct {
	// EntryFile is the path of the file to compile.
	EntryFile string
	// Code, when non-empty, is compiled in memory instead of reading
	// EntryFile from disk; EntryFile is still used as the reported file
	// name and as the base for resolving imports.
	Code string
	// Debug enables phase progress output.
	Debug bool
}

// Result of a compilation.
type Result struct {
	// Success is true when no diagnostics were produced.
	Success bool
	// Output is the rendered diagnostic text (empty on success).
	Output string
	// Context carries the annotated program for downstream stages.
	Context *context.CompilerContext
}

// Compile runs the front-end over the entry file and returns the result.
// Internal invariant violations are surfaced as diagnostics, never as
// panics reaching the caller.
func Compile(opts *Options) (result Result) {
	entryFile := opts.EntryFile
	if entryFile == "" {
		entryFile = "main.brn"
	}

	ctx := context.New(entryFile)
	ctx.Debug = opts.Debug

	defer func() {
		if r := recover(); r != nil {
			ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("internal compiler error: %v", r)).
					WithCode(diagnostics.ErrInternal),
			)
			result = finish(ctx)
		}
	}()

	phase(ctx, "parsing")
	if opts.Code != "" {
		ctx.Program = modules.LoadSource(entryFile, opts.Code, ctx.Diagnostics)
	} else {
		ctx.Program = modules.LoadProgram(entryFile, ctx.Diagnostics)
	}
	if ctx.Program == nil || ctx.Diagnostics.HasErrors() {
		return finish(ctx)
	}

	phase(ctx, "collecting declarations")
	if !collector.Collect(ctx) {
		return finish(ctx)
	}

	phase(ctx, "type checking")
	typechecker.Check(ctx)

	phase(ctx, "ownership analysis")
	ownership.Track(ctx)

	return finish(ctx)
}

func finish(ctx *context.CompilerContext) Result {
	if ctx.Diagnostics.HasErrors() {
		return Result{
			Success: false,
			Output:  ctx.Diagnostics.EmitAllToString(),
			Context: ctx,
		}
	}
	return Result{Success: true, Context: ctx}
}

func phase(ctx *context.CompilerContext, name string) {
	if ctx.Debug {
		color.New(color.FgCyan).Fprintf(os.Stderr, "[%s] %s\n", ctx.EntryFile, name)
	}
}
