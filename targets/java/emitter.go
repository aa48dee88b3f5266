// Package java implements the Java Target Emitter (spec.md §4.3): the
// org.bson / java.util construction forms for every recognized BSON class.
package java

import (
	"fmt"
	"strings"

	"github.com/oxhq/mshellx/ast"
	"github.com/oxhq/mshellx/errs"
	"github.com/oxhq/mshellx/sandbox"
	"github.com/oxhq/mshellx/targets"
)

// binarySubtype mirrors org.bson.BsonBinarySubType's constant names.
var binarySubtype = map[byte]string{
	0:    "BsonBinarySubType.BINARY",
	1:    "BsonBinarySubType.FUNCTION",
	2:    "BsonBinarySubType.OLD_BINARY",
	3:    "BsonBinarySubType.UUID_LEGACY",
	4:    "BsonBinarySubType.UUID_STANDARD",
	5:    "BsonBinarySubType.MD5",
	0x80: "BsonBinarySubType.USER_DEFINED",
}

var regexFlags = targets.FlagTable{
	'i': "i",
	'm': "m",
	'u': "u",
	'y': "",
	'g': "",
}

type emitter struct {
	hosts map[string]targets.HostEmitFunc
}

// New builds the Java Emitter.
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

func (e *emitter) Name() string                        { return "java" }
func (e *emitter) RequiresNewForConstructors() bool     { return true }
func (e *emitter) NewToken() string                     { return "new " }
func (e *emitter) RenderString(s string) string         { return `"` + targets.EscapeQuoted(s, '"') + `"` }
func (e *emitter) RenderBoolean(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
func (e *emitter) RenderNull() string                  { return "null" }
func (e *emitter) RenderUndefined() string             { return "null" }
func (e *emitter) RenderIntegerText(raw string) string { return raw }
func (e *emitter) RenderDecimalText(raw string) string { return raw }
func (e *emitter) RenderHexText(raw string) string     { return raw }
func (e *emitter) RenderOctalText(raw string) string   { return "0" + stripOctalPrefix(raw) }

func stripOctalPrefix(raw string) string {
	s := raw
	if strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O") {
		return s[2:]
	}
	return strings.TrimLeft(s, "0")
}

func (e *emitter) RenderObjectLiteral(pairs [][2]string) string {
	if len(pairs) == 0 {
		return "new Document()"
	}
	var sb strings.Builder
	sb.WriteString("new Document()")
	for _, p := range pairs {
		fmt.Fprintf(&sb, `.append("%s", %s)`, targets.EscapeQuoted(p[0], '"'), p[1])
	}
	return sb.String()
}

func (e *emitter) RenderArrayLiteral(elems []string) string {
	return "Arrays.asList(" + strings.Join(elems, ", ") + ")"
}

func (e *emitter) RenderRegex(source, flags string) (string, error) {
	pattern := targets.EscapeFirstBackslashOnly(source)
	translated := targets.TranslateFlags(flags, regexFlags)
	if translated == "" {
		return fmt.Sprintf(`Pattern.compile("%s")`, pattern), nil
	}
	return fmt.Sprintf(`Pattern.compile("%s(?%s)")`, pattern, translated), nil
}

func (e *emitter) RenderPlainCall(calleeText string, argTexts []string, isNew bool) string {
	prefix := ""
	if isNew {
		prefix = e.NewToken()
	}
	return fmt.Sprintf("%s%s(%s)", prefix, calleeText, strings.Join(argTexts, ", "))
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
		return fmt.Sprintf("new Code(%s)", codeText), nil
	}
	scopeText, _, err := visit(args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("new CodeWithScope(%s, %s)", codeText, scopeText), nil
}

func (e *emitter) emitObjectId(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("ObjectId", args)
	if err != nil {
		return "", err
	}
	oid := v.(sandbox.ObjectIDValue)
	if len(args) == 0 {
		return "new ObjectId()", nil
	}
	return fmt.Sprintf(`new ObjectId("%s")`, oid.ID.Hex()), nil
}

func (e *emitter) emitBinary(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("Binary", args)
	if err != nil {
		return "", err
	}
	bin := v.(sandbox.BinaryValue)
	data := fmt.Sprintf("%s.getBytes(StandardCharsets.UTF_8)", e.RenderString(string(bin.Bin.Data)))
	if len(args) < 2 {
		return fmt.Sprintf("new Binary(%s)", data), nil
	}
	name, ok := binarySubtype[bin.Bin.Subtype]
	if !ok {
		name = fmt.Sprintf("(byte) %d", bin.Bin.Subtype)
	}
	return fmt.Sprintf("new Binary(%s, %s)", name, data), nil
}

func (e *emitter) emitDouble(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	text, _, err := visit(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("new Double(%s)", text), nil
}

func (e *emitter) emitLong(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("Long", args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`new Long("%d")`, int64(v.(sandbox.LongValue))), nil
}

func (e *emitter) emitInt32(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	text, _, err := visit(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("new Integer(%s)", text), nil
}

func (e *emitter) emitNumber(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	text, _, err := visit(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Integer.parseInt(%s)", text), nil
}

func (e *emitter) emitMaxKey(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	return "new MaxKey()", nil
}

func (e *emitter) emitMinKey(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	return "new MinKey()", nil
}

func (e *emitter) emitSymbol(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
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
	return fmt.Sprintf("new BsonTimestamp(%d, %d)", ts.TS.T, ts.TS.I), nil
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
		return fmt.Sprintf("new DBRef(%s, %s)", nsText, oidText), nil
	}
	dbText, _, err := visit(args[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("new DBRef(%s, %s, %s)", dbText, nsText, oidText), nil
}

func (e *emitter) emitBSONRegExp(args []ast.Node, isNew bool, visit targets.VisitFunc) (string, error) {
	v, err := sandbox.Evaluate("BSONRegExp", args)
	if err != nil {
		return "", err
	}
	re := v.(sandbox.RegexValue)
	if err := validateBSONRegExpFlags(re.Flags); err != nil {
		// REDESIGN FLAG (SPEC_FULL.md §13): Java raises here instead of
		// returning the unsupported flag back as a plain string.
		return "", err
	}
	if re.Flags == "" {
		return fmt.Sprintf(`new BsonRegularExpression("%s")`, targets.EscapeQuoted(re.Source, '"')), nil
	}
	return fmt.Sprintf(`new BsonRegularExpression("%s", "%s")`, targets.EscapeQuoted(re.Source, '"'), re.Flags), nil
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
	return fmt.Sprintf(`Decimal128.parse("%s")`, dec.Dec.String()), nil
}

// emitObjectCreate: Java has no prototype-chain primitive either, so the
// argument is passed through unchanged, matching Python's treatment.
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
	if len(args) == 0 {
		return "new java.util.Date()", nil
	}
	d := v.(sandbox.DateValue)
	return fmt.Sprintf("new java.util.Date(%dL)", d.Time.UnixMilli()), nil
}
