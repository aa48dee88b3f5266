// Package targets defines the Target Emitter contract (spec.md §4.3): the
// per-target overrides for literal rendering and for every recognized BSON
// host class, plus the shared regex/octal/string rules every target obeys.
//
// Grounded on providers/base's LanguageConfig + Provider split (termfx-morfx):
// one small per-target config implements the differences, one shared helper
// layer (here, free functions in this package) implements what every target
// has in common.
package targets

import (
	"strings"

	"github.com/oxhq/mshellx/ast"
	"github.com/oxhq/mshellx/symtab"
)

// VisitFunc lets a host-class emitter recursively render a nested argument
// (e.g. Code's object-literal scope argument) through the generic walker
// without the targets package importing the walker package.
type VisitFunc func(ast.Node) (text string, ty *symtab.Type, err error)

// HostEmitFunc is dynamic dispatch by Type id: the "call emit<Id> if it
// exists" pattern spec.md §4.2/§9 describes, realized as a map entry
// instead of reflection-based method lookup, per Design Notes' preference
// for an id->function mapping when the recognized set is fixed per target.
type HostEmitFunc func(args []ast.Node, isNew bool, visit VisitFunc) (string, error)

// Emitter is the per-target contract. One implementation per target
// language (targets/python, targets/java).
type Emitter interface {
	Name() string

	// RequiresNewForConstructors reports whether a generic (non-hooked)
	// constructor call should be prefixed with NewToken().
	RequiresNewForConstructors() bool
	NewToken() string

	RenderString(decoded string) string
	RenderBoolean(b bool) string
	RenderNull() string
	RenderUndefined() string
	RenderIntegerText(raw string) string
	RenderDecimalText(raw string) string
	RenderHexText(raw string) string
	RenderOctalText(raw string) string

	// RenderObjectLiteral receives already-rendered (key, valueText) pairs
	// in source order.
	RenderObjectLiteral(pairs [][2]string) string
	RenderArrayLiteral(elemTexts []string) string

	// RenderRegex implements the shared regex rule (spec.md §4.3): the
	// caller has already sandbox-evaluated source/flags; this renders the
	// target's construction form, including the per-target flag table and
	// the double-escape quirk.
	RenderRegex(source, flags string) (string, error)

	// RenderPlainCall and RenderMemberAccess implement the generic (non
	// hooked) call/attribute-access path of spec.md §4.2, used for chained
	// attribute calls like NumberLong(...).toString(10).
	RenderPlainCall(calleeText string, argTexts []string, isNew bool) string
	RenderMemberAccess(lhsText, attr string) string

	// HostEmitter looks up the emitter hook for a recognized Type id, by
	// convention named emit<Id> in the source this module is grounded on.
	HostEmitter(id string) (HostEmitFunc, bool)
}

// EscapeFirstBackslashOnly replicates the legacy non-global-replace quirk
// Design Notes and SPEC_FULL.md §9 call out: only the first backslash
// found in the pattern is doubled, the rest of the pattern is untouched,
// regardless of whether that backslash was already part of an escape
// sequence. Preserved byte-for-byte for parity rather than "fixed" into a
// global replace.
func EscapeFirstBackslashOnly(pattern string) string {
	idx := strings.IndexByte(pattern, '\\')
	if idx < 0 {
		return pattern
	}
	return pattern[:idx] + `\\` + pattern[idx+1:]
}

// FlagTable maps JS regex flags to a target's flags, using "" to mean drop.
type FlagTable map[byte]string

// TranslateFlags applies table to every flag in js, drops unmapped/empty
// entries, de-duplicates, and returns them sorted ascending — spec.md §8's
// "Regex preservation" property requires a stable ascending flag order.
func TranslateFlags(js string, table FlagTable) string {
	seen := map[byte]bool{}
	var out []byte
	for i := 0; i < len(js); i++ {
		mapped, ok := table[js[i]]
		if !ok || mapped == "" {
			continue
		}
		for k := 0; k < len(mapped); k++ {
			c := mapped[k]
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	// insertion sort is fine; the translated flag sets are at most a
	// handful of characters
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return string(out)
}

// EscapeQuoted escapes backslashes and the given quote rune for embedding
// raw text inside a quoted string literal, the shared string-rendering
// rule spec.md §4.3 describes (each target just picks its own quote char).
func EscapeQuoted(s string, quote byte) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == quote {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
