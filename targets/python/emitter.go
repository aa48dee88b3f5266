// Package python implements the Python Target Emitter (spec.md §4.3): pymongo
// and Python stdlib construction forms for every recognized BSON class.
package python

import (
	"fmt"
	"strings"

	"github.com/oxhq/mshellx/ast"
	"github.com/oxhq/mshellx/errs"
	"github.com/oxhq/mshellx/sandbox"
	"github.com/oxhq/mshellx/targets"
)

// binarySubtype mirrors pymongo's bson.binary module constants.
var binarySubtype = map[byte]string{
	0:    "bson.binary.BINARY_SUBTYPE",
	1:    "bson.binary.FUNCTION_SUBTYPE",
	2:    "bson.binary.OLD_BINARY_SUBTYPE",
	3:    "bson.binary.OLD_UUID_SUBTYPE",
	4:    "bson.binary.UUID_SUBTYPE",
	5:    "bson.binary.MD5_SUBTYPE",
	0x80: "bson.binary.USER_DEFINED_SUBTYPE",
}

var regexFlags = targets.FlagTable{
	'i': "i",
	'm': "m",
	'u': "a",
	'y': "",
	'g': "s",
}

type emitter struct {
	hosts map[string]targets.HostEmitFunc
}

// New builds the Python Emitter.
func New() targets.Emitter {
	e := &emitter{}
	e.hosts = map[string]targets.HostEmitFunc{
		"Code":          e.emitCode,
		"ObjectId":      e.emitObjectId,
		"Binary":        e.emitBinary,
		"Double":        e.emitDouble,
		"Long":          e.emitLong,
		"Int32":         e.emitInt32,
		"Number":        e.emitNumber,
		"MaxKey":        e.emitMaxKey,
		"MinKey":        e.emitMinKey,
		"Symbol":        e.emitSymbol,
		"Timestamp":     e.emitTimestamp,
		"DBRef":         e.emitDBRef,
		"BSONRegExp":    e.emitBSONRegExp,
		"Decimal128":    e.emitDecimal128,
		"Date":          e.emitDate,
		"Object.create": e.emitObjectCreate,
	}
	return e
}

func (e *emitter) Name() string                        { return "python" }
func (e *emitter) RequiresNewForConstructors() bool     { return false }
func (e *emitter) NewToken() string                     { return "" }
func (e *emitter) RenderString(s string) string         { return "'" + targets.EscapeQuoted(s, '\'') + "'" }
func (e *emitter) RenderBoolean(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
func (e *emitter) RenderNull() string                  { return "None" }
func (e *emitter) RenderUndefined() string             { return "None" }
func (e *emitter) RenderIntegerText(raw string) string { return raw }
func (e *emitter) RenderDecimalText(raw string) string { return raw }
func (e *emitter) RenderHexText(raw string) string     { return raw }
func (e *emitter) RenderOctalText(raw string) string   { return "0o" + stripOctalPrefix(raw) }

func stripOctalPrefix(raw string) string {
	s := raw
	if strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O") {
		return s[2:]
	}
	return strings.TrimLeft(s, "0")
}

func (e *emitter) RenderObjectLiteral(pairs [][2]string) string {
	if len(pairs) == 0 {
		return "{}"
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("'%s': %s", targets.EscapeQuoted(p[0], '\''), p[1])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (e *emitter) RenderArrayLiteral(elems []string) string {
	return "[" + strings.Join(elems, ", ") + "]"
}

func (e *emitter) RenderRegex(source, flags string) (string, error) {
	pattern := targets.EscapeFirstBackslashOnly(source)
	translated := targets.TranslateFlags(flags, regexFlags)
	if translated == "" {
		return fmt.Sprintf(`re.compile(r"%s")`, pattern), nil
	}
	return fmt.Sprintf(`re.compile(r"%s(?%s)")`, pattern, translated), nil
}

func (e *emitter) RenderPlainCall(calleeText string, argTexts []string, isNew bool) string {
	return fmt.Sprintf("%s(%s)", calleeText, strings.Join(argTexts, ", "))
}

func (e *emitter) RenderMemberAccess(lhsText, attr string) string {
	return lhsText + "." + attr
}

func (e *emitter) HostEmitter(id string) (targets.HostEmitFunc, bool) {
	fn, ok := e.hosts[id]
	return fn, ok
}

func (e *emitter) emitCode(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	codeText, _, err := visit(args[0])
	if err != nil {
		return "", err
	}
	if len(args) == 1 {
		return fmt.Sprintf("Code(%s)", codeText), nil
	}
	scopeText, _, err := visit(args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Code(%s, %s)", codeText, scopeText), nil
}

func (e *emitter) emitObjectId(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("ObjectId", args)
	if err != nil {
		return "", err
	}
	oid := v.(sandbox.ObjectIDValue)
	if len(args) == 0 {
		return "ObjectId()", nil
	}
	return fmt.Sprintf("ObjectId('%s')", oid.ID.Hex()), nil
}

func (e *emitter) emitBinary(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("Binary", args)
	if err != nil {
		return "", err
	}
	bin := v.(sandbox.BinaryValue)
	data := fmt.Sprintf("bytes(%s, 'utf-8')", e.RenderString(string(bin.Bin.Data)))
	if len(args) < 2 {
		return fmt.Sprintf("Binary(%s)", data), nil
	}
	name, ok := binarySubtype[bin.Bin.Subtype]
	if !ok {
		name = fmt.Sprintf("%d", bin.Bin.Subtype)
	}
	return fmt.Sprintf("Binary(%s, %s)", data, name), nil
}

func (e *emitter) emitDouble(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	text, _, err := visit(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("float(%s)", text), nil
}

func (e *emitter) emitLong(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("Long", args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Int64(%d)", int64(v.(sandbox.LongValue))), nil
}

func (e *emitter) emitInt32(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	text, _, err := visit(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("int(%s)", text), nil
}

func (e *emitter) emitNumber(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	text, _, err := visit(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("int(%s)", text), nil
}

func (e *emitter) emitMaxKey(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	return "MaxKey()", nil
}

func (e *emitter) emitMinKey(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	return "MinKey()", nil
}

func (e *emitter) emitSymbol(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	// Deprecated BSON wire type; rendered as a plain string (SPEC_FULL.md §12).
	text, _, err := visit(args[0])
	if err != nil {
		return "", err
	}
	return text, nil
}

func (e *emitter) emitTimestamp(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("Timestamp", args)
	if err != nil {
		return "", err
	}
	ts := v.(sandbox.TimestampValue)
	return fmt.Sprintf("Timestamp(%d, %d)", ts.TS.T, ts.TS.I), nil
}

func (e *emitter) emitDBRef(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	nsText, _, err := visit(args[0])
	if err != nil {
		return "", err
	}
	oidText, _, err := visit(args[1])
	if err != nil {
		return "", err
	}
	if len(args) == 2 {
		return fmt.Sprintf("DBRef(%s, %s)", nsText, oidText), nil
	}
	dbText, _, err := visit(args[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DBRef(%s, %s, %s)", nsText, oidText, dbText), nil
}

func (e *emitter) emitBSONRegExp(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("BSONRegExp", args)
	if err != nil {
		return "", err
	}
	re := v.(sandbox.RegexValue)
	if err := validateBSONRegExpFlags(re.Flags); err != nil {
		return "", err
	}
	if re.Flags == "" {
		return fmt.Sprintf("Regex('%s')", targets.EscapeQuoted(re.Source, '\'')), nil
	}
	return fmt.Sprintf("Regex('%s', '%s')", targets.EscapeQuoted(re.Source, '\''), re.Flags), nil
}

// validateBSONRegExpFlags enforces BSONRegExp's own flag set {i,m,x,s,l,u},
// distinct from RegExp's JS flag set (spec.md §4.3). Reports every offending
// letter at once rather than stopping at the first.
func validateBSONRegExpFlags(flags string) error {
	var bad []byte
	for i := 0; i < len(flags); i++ {
		c := flags[i]
		if !strings.ContainsRune("imxslu", rune(c)) {
			bad = append(bad, c)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return errs.Generic(0, fmt.Sprintf("unsupported BSONRegExp flags %q", string(bad)), nil)
}

func (e *emitter) emitDecimal128(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("Decimal128", args)
	if err != nil {
		return "", err
	}
	dec := v.(sandbox.DecimalValue)
	return fmt.Sprintf("Decimal128(Decimal('%s'))", dec.Dec.String()), nil
}

// emitObjectCreate implements Object.create's "no analogue" contract:
// Python has no prototype-chain primitive, so the argument object is
// rendered verbatim and passed through unchanged.
func (e *emitter) emitObjectCreate(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	text, _, err := visit(args[0])
	if err != nil {
		return "", err
	}
	return text, nil
}

func (e *emitter) emitDate(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("Date", args)
	if err != nil {
		return "", err
	}
	d := v.(sandbox.DateValue)
	if len(args) == 0 {
		return "datetime.datetime.utcnow()", nil
	}
	if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Milli() == 0 && dateArgLooksDateOnly(args) {
		return fmt.Sprintf("datetime.datetime(%d, %d, %d)", d.Year(), d.Month()+1, d.Day()), nil
	}
	micros := d.Milli() * 1000
	return fmt.Sprintf("datetime.datetime(%d, %d, %d, %d, %d, %d, %d)",
		d.Year(), d.Month()+1, d.Day(), d.Hour(), d.Minute(), d.Second(), micros), nil
}

// dateArgLooksDateOnly reports whether Date() was called with a single
// string argument that has no time-of-day component, spec.md §4.3's
// "date-only rendering" for a bare ISO date string.
func dateArgLooksDateOnly(args []ast.Node) bool {
	if len(args) != 1 {
		return false
	}
	lit, ok := args[0].(*ast.Literal)
	if !ok || lit.Kind() != ast.KindString {
		return false
	}
	return !strings.Contains(lit.Value, "T")
}
