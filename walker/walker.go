// Package walker implements the Tree Walker (spec.md §4.2): the single
// generic algorithm that drives a translation, independent of target
// language. Per-node-kind dispatch, the argument checker, and the
// hand-off to the target's host hooks (looked up by Type id in the
// emitter's host-hook map) all live here; everything target-specific
// lives behind the targets.Emitter it is constructed with.
//
// Grounded on internal/evaluator/universal.go (termfx-morfx): a single
// language-agnostic algorithm parameterized by an injected provider, rather
// than one copy of the traversal per target.
package walker

import (
	"github.com/oxhq/mshellx/ast"
	"github.com/oxhq/mshellx/errs"
	"github.com/oxhq/mshellx/symtab"
	"github.com/oxhq/mshellx/targets"
)

// Walker drives one translation. It is cheap to construct and not reused
// across translations — the type side-table is translation-scoped.
type Walker struct {
	table   *symtab.Table
	emitter targets.Emitter
	// types is the node-identity side table Design Notes settled on in
	// place of mutating the (read-only, externally-owned) ast.Node tree:
	// keyed by the node's own pointer identity, since every concrete
	// ast.Node implementation is a pointer type.
	types map[ast.Node]*symtab.Type
}

// New builds a Walker targeting the given symbol table and emitter.
func New(table *symtab.Table, emitter targets.Emitter) *Walker {
	return &Walker{table: table, emitter: emitter, types: make(map[ast.Node]*symtab.Type)}
}

// Translate is the single public entry point: walk tree and render it in
// the Walker's target language, or report the first error encountered.
func (w *Walker) Translate(tree ast.Node) (string, error) {
	text, _, err := w.visit(tree)
	return text, err
}

// TypeOf exposes the side table for callers that want the inferred type of
// a node already visited by a prior Translate call (e.g. tests asserting
// on type inference). It returns false for nodes never visited.
func (w *Walker) TypeOf(n ast.Node) (*symtab.Type, bool) {
	ty, ok := w.types[n]
	return ty, ok
}

func leafType(id symtab.ID) *symtab.Type { return &symtab.Type{IDValue: id} }

func (w *Walker) remember(n ast.Node, ty *symtab.Type) *symtab.Type {
	w.types[n] = ty
	return ty
}

func (w *Walker) visit(n ast.Node) (string, *symtab.Type, error) {
	switch node := n.(type) {
	case *ast.Literal:
		return w.visitLiteral(node)
	case *ast.ObjectLiteral:
		return w.visitObjectLiteral(node)
	case *ast.ArrayLiteral:
		return w.visitArrayLiteral(node)
	case *ast.Elision:
		ty := w.remember(node, leafType(symtab.Null))
		return w.emitter.RenderNull(), ty, nil
	case *ast.Identifier:
		return w.visitIdentifier(node)
	case *ast.MemberExpr:
		return w.resolveMember(node)
	case *ast.NewExpr:
		text, ty, err := w.dispatchCall(node.Callee, node.Args, true)
		if err == nil {
			w.remember(node, ty)
		}
		return text, ty, err
	case *ast.CallExpr:
		text, ty, err := w.dispatchCall(node.Callee, node.Args, false)
		if err == nil {
			w.remember(node, ty)
		}
		return text, ty, err
	default:
		return "", nil, errs.Generic(0, "unsupported node kind", nil)
	}
}

func (w *Walker) visitLiteral(n *ast.Literal) (string, *symtab.Type, error) {
	var text string
	var id symtab.ID
	switch n.Kind() {
	case ast.KindString:
		text, id = w.emitter.RenderString(n.Value), symtab.String
	case ast.KindInteger:
		text, id = w.emitter.RenderIntegerText(n.Value), symtab.Integer
	case ast.KindDecimal:
		text, id = w.emitter.RenderDecimalText(n.Value), symtab.Decimal
	case ast.KindHex:
		text, id = w.emitter.RenderHexText(n.Value), symtab.Hex
	case ast.KindOctal:
		text, id = w.emitter.RenderOctalText(n.Value), symtab.Octal
	case ast.KindBoolean:
		text, id = w.emitter.RenderBoolean(n.Value == "true"), symtab.Boolean
	case ast.KindNull:
		text, id = w.emitter.RenderNull(), symtab.Null
	case ast.KindUndefined:
		text, id = w.emitter.RenderUndefined(), symtab.Undefined
	case ast.KindRegex:
		rendered, err := w.emitter.RenderRegex(n.Value, n.Flags)
		if err != nil {
			return "", nil, err
		}
		text, id = rendered, symtab.Regex
	default:
		return "", nil, errs.Generic(0, "unrecognized literal kind", nil)
	}
	return text, w.remember(n, leafType(id)), nil
}

func (w *Walker) visitObjectLiteral(n *ast.ObjectLiteral) (string, *symtab.Type, error) {
	pairs := make([][2]string, len(n.Props))
	for i, p := range n.Props {
		valText, _, err := w.visit(p.Value)
		if err != nil {
			return "", nil, err
		}
		pairs[i] = [2]string{p.Key, valText}
	}
	text := w.emitter.RenderObjectLiteral(pairs)
	return text, w.remember(n, leafType(symtab.Object)), nil
}

func (w *Walker) visitArrayLiteral(n *ast.ArrayLiteral) (string, *symtab.Type, error) {
	elems := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		text, _, err := w.visit(el)
		if err != nil {
			return "", nil, err
		}
		elems[i] = text
	}
	text := w.emitter.RenderArrayLiteral(elems)
	return text, w.remember(n, leafType(symtab.Array)), nil
}

// visitIdentifier handles a bare identifier reference, i.e. one not
// immediately used as a call/new callee (dispatchCall handles that case
// directly). MaxKey and MinKey are the one supplemented exception
// (SPEC_FULL.md §12): a bare reference to either is equivalent to calling
// it with no arguments, since both are always zero-arity.
func (w *Walker) visitIdentifier(n *ast.Identifier) (string, *symtab.Type, error) {
	ty, ok := w.table.Lookup(n.Name)
	if !ok {
		return "", nil, errs.Reference(0, n.Name)
	}
	if n.Name == "MaxKey" || n.Name == "MinKey" {
		return w.invoke(n.Name, ty, nil, false)
	}
	if ty.Callable != symtab.NotCallable {
		return "", nil, errs.NotCallable(0, n.Name)
	}
	return n.Name, w.remember(n, ty), nil
}

// resolveCalleeObject resolves the left-hand side of a member access. A
// bare identifier is looked up directly rather than through visitIdentifier,
// because a namespace/constructor reference used only to reach a static
// attribute (Object.create, Long.fromBits) is not itself "called" the way
// visitIdentifier's bare-reference rule otherwise requires.
func (w *Walker) resolveCalleeObject(n ast.Node) (string, *symtab.Type, error) {
	if id, ok := n.(*ast.Identifier); ok {
		ty, ok := w.table.Lookup(id.Name)
		if !ok {
			return "", nil, errs.Reference(0, id.Name)
		}
		return id.Name, ty, nil
	}
	return w.visit(n)
}

// resolveMember resolves dotted attribute access to its bound attribute
// Type, without invoking it. Used both for a standalone MemberExpr and, via
// dispatchCall, for the object half of an attribute call.
func (w *Walker) resolveMember(n *ast.MemberExpr) (string, *symtab.Type, error) {
	objText, objType, err := w.resolveCalleeObject(n.Object)
	if err != nil {
		return "", nil, err
	}
	attrType, ok := objType.AttrType(n.Property)
	if !ok {
		return "", nil, errs.Attribute(0, string(objType.ID()), n.Property)
	}
	text := w.emitter.RenderMemberAccess(objText, n.Property)
	return text, w.remember(n, attrType), nil
}

// dispatchCall implements spec.md §4.2's call algorithm for both `new X(...)`
// and `X(...)`: resolve the callee to a Type, run the shared argument
// checker against its declared schema, then hand off to the target's
// host hook for that Type id if one is registered, or fall back to
// generic rendering.
func (w *Walker) dispatchCall(calleeNode ast.Node, args []ast.Node, isNew bool) (string, *symtab.Type, error) {
	switch callee := calleeNode.(type) {
	case *ast.Identifier:
		ty, ok := w.table.Lookup(callee.Name)
		if !ok {
			return "", nil, errs.Reference(0, callee.Name)
		}
		if ty.Callable == symtab.NotCallable {
			return "", nil, errs.NotCallable(0, callee.Name)
		}
		return w.invoke(callee.Name, ty, args, isNew)
	case *ast.MemberExpr:
		objText, objType, err := w.resolveCalleeObject(callee.Object)
		if err != nil {
			return "", nil, err
		}
		attrType, ok := objType.AttrType(callee.Property)
		if !ok {
			return "", nil, errs.Attribute(0, string(objType.ID()), callee.Property)
		}
		if attrType.Callable == symtab.NotCallable {
			return "", nil, errs.NotCallable(0, callee.Property)
		}
		calleeText := w.emitter.RenderMemberAccess(objText, callee.Property)
		return w.invokeResolved(callee.Property, calleeText, attrType, args, false)
	default:
		return "", nil, errs.Generic(0, "call target is not callable", nil)
	}
}

// invoke handles an identifier-rooted call: name is both the error-message
// name and, via ty.IDValue, the host-hook lookup key.
func (w *Walker) invoke(name string, ty *symtab.Type, args []ast.Node, isNew bool) (string, *symtab.Type, error) {
	return w.invokeResolved(name, name, ty, args, isNew)
}

// invokeResolved is the shared tail of invoke and the attribute-call branch
// of dispatchCall: check arity/types, then dispatch to a host hook or the
// generic rendering path. calleeText is what the generic path renders as
// the call's callee (already fully rendered, e.g. "Int64(12345).toString"
// for a chained attribute call).
func (w *Walker) invokeResolved(name, calleeText string, ty *symtab.Type, args []ast.Node, isNew bool) (string, *symtab.Type, error) {
	if ty.Args != nil {
		if err := w.checkArgs(name, ty.Args, args); err != nil {
			return "", nil, err
		}
	}

	if ty.IDValue == "RegExp" {
		return w.emitRegExpConstructor(args)
	}

	if hook, ok := w.emitter.HostEmitter(string(ty.IDValue)); ok {
		text, err := hook(args, isNew, w.visit)
		if err != nil {
			return "", nil, err
		}
		return text, ty.Instance, nil
	}

	argTexts := make([]string, len(args))
	for i, a := range args {
		text, _, err := w.visit(a)
		if err != nil {
			return "", nil, err
		}
		argTexts[i] = text
	}
	prefixNew := isNew || (ty.Callable == symtab.Constructor && w.emitter.RequiresNewForConstructors())
	return w.emitter.RenderPlainCall(calleeText, argTexts, prefixNew), ty.Instance, nil
}

func (w *Walker) emitRegExpConstructor(args []ast.Node) (string, *symtab.Type, error) {
	if len(args) == 0 || len(args) > 2 {
		return "", nil, errs.Arity(0, "RegExp", len(args), 1, 2)
	}
	patternLit, ok := args[0].(*ast.Literal)
	if !ok || patternLit.Kind() != ast.KindString {
		return "", nil, errs.TypeMismatch(0, "RegExp", 0, []string{string(symtab.String)}, "other")
	}
	var flags string
	if len(args) == 2 {
		flagLit, ok := args[1].(*ast.Literal)
		if !ok || flagLit.Kind() != ast.KindString {
			return "", nil, errs.TypeMismatch(0, "RegExp", 1, []string{string(symtab.String)}, "other")
		}
		flags = flagLit.Value
	}
	text, err := w.emitter.RenderRegex(patternLit.Value, flags)
	if err != nil {
		return "", nil, err
	}
	return text, leafType(symtab.Regex), nil
}

// checkArgs implements the shared argument checker of spec.md §4.2: arity
// first (against the non-optional prefix and full slot count), then each
// present argument's inferred type against its slot.
func (w *Walker) checkArgs(name string, slots []symtab.Slot, args []ast.Node) error {
	lo := 0
	for _, s := range slots {
		if !s.Optional {
			lo++
		}
	}
	hi := len(slots)
	if len(args) < lo || len(args) > hi {
		return errs.Arity(0, name, len(args), lo, hi)
	}
	for i := 0; i < len(args); i++ {
		_, ty, err := w.visit(args[i])
		if err != nil {
			return err
		}
		if !slots[i].AcceptsType(ty.ID()) {
			return errs.TypeMismatch(0, name, i, slotNames(slots[i]), string(ty.ID()))
		}
	}
	return nil
}

func slotNames(slot symtab.Slot) []string {
	out := make([]string, len(slot.Accepts))
	for i, id := range slot.Accepts {
		out[i] = string(id)
	}
	return out
}
