// Package mshellx translates a mongo shell expression into an equivalent
// literal expression in a target host language. See spec.md §1-§2 for the
// overall contract and DESIGN.md for how each package here is grounded.
package mshellx

import (
	"fmt"

	"github.com/oxhq/mshellx/ast"
	"github.com/oxhq/mshellx/errs"
	"github.com/oxhq/mshellx/symtab"
	"github.com/oxhq/mshellx/targets"
	"github.com/oxhq/mshellx/targets/java"
	"github.com/oxhq/mshellx/targets/python"
	"github.com/oxhq/mshellx/walker"
)

// Target names accepted by New.
const (
	Python = "python"
	Java   = "java"
)

// Translator holds the symbol table and target selection for repeated
// translations (spec.md §6: "target selector ... chosen at construction
// time"). The symbol table is immutable and safe to share; a Translator is
// not itself safe for concurrent use from multiple goroutines if callers
// mutate the underlying arguments between calls, though Translate itself
// performs no shared mutable state (spec.md §3).
type Translator struct {
	table   *symtab.Table
	emitter targets.Emitter
}

// New builds a Translator for the named target ("python" or "java").
func New(target string) (*Translator, error) {
	var emitter targets.Emitter
	switch target {
	case Python:
		emitter = python.New()
	case Java:
		emitter = java.New()
	default:
		return nil, errs.Generic(0, fmt.Sprintf("unrecognized target %q", target), nil)
	}
	return &Translator{table: symtab.New(), emitter: emitter}, nil
}

// Translate parses src as a single mongo shell expression and renders it in
// the Translator's target language.
func (tr *Translator) Translate(src string) (string, error) {
	tree, err := ast.Parse(src)
	if err != nil {
		return "", errs.Generic(0, "parse error", err)
	}
	return tr.TranslateTree(tree)
}

// TranslateTree renders an already-parsed tree, for callers that built (or
// cached) the ast.Node themselves.
func (tr *Translator) TranslateTree(tree ast.Node) (string, error) {
	w := walker.New(tr.table, tr.emitter)
	return w.Translate(tree)
}
