package sandbox

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oxhq/mshellx/ast"
	"github.com/oxhq/mshellx/errs"
	"github.com/oxhq/mshellx/numlit"
)

// Evaluate folds one of the recognized compile-time-evaluable constructor
// calls (spec.md §4.4) into its canonical host value. ctorName is the
// symbol-table name the walker resolved the callee to (e.g. "ObjectId",
// "NumberLong"); args are that call's already-parsed argument nodes.
//
// Evaluation failures are always wrapped into a generic error carrying the
// underlying message, per spec.md §4.4 and §7.
func Evaluate(ctorName string, args []ast.Node) (any, error) {
	switch ctorName {
	case "ObjectId":
		return evalObjectID(args)
	case "Binary":
		return evalBinary(args)
	case "Long", "NumberLong":
		return evalLong(args)
	case "Date", "ISODate":
		return evalDate(args)
	case "Decimal128", "NumberDecimal":
		return evalDecimal128(args)
	case "RegExp", "BSONRegExp":
		return evalRegex(args)
	case "Timestamp":
		return evalTimestamp(args)
	default:
		return nil, errs.Generic(0, fmt.Sprintf("%s is not sandbox-evaluable", ctorName), nil)
	}
}

func evalObjectID(args []ast.Node) (any, error) {
	if len(args) == 0 {
		return ObjectIDValue{ID: primitive.NewObjectID()}, nil
	}
	hex, ok := stringArg(args[0])
	if !ok {
		return nil, errs.Generic(0, "ObjectId argument must be a string literal", nil)
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, errs.Generic(0, "invalid ObjectId hex string", err)
	}
	return ObjectIDValue{ID: id}, nil
}

func evalBinary(args []ast.Node) (any, error) {
	if len(args) == 0 {
		return nil, errs.Generic(0, "Binary requires at least one argument", nil)
	}
	data, ok := stringArg(args[0])
	if !ok {
		return nil, errs.Generic(0, "Binary data argument must be a string literal", nil)
	}
	var subtype byte
	if len(args) == 2 {
		v, err := intArg(args[1])
		if err != nil {
			return nil, errs.Generic(0, "Binary subtype must be numeric", err)
		}
		subtype = byte(v)
	}
	return BinaryValue{Bin: primitive.Binary{Subtype: subtype, Data: []byte(data)}}, nil
}

func evalLong(args []ast.Node) (any, error) {
	switch len(args) {
	case 1:
		v, err := numericOrStringInt(args[0])
		if err != nil {
			return nil, errs.Generic(0, "Long argument is not a valid signed 64-bit integer", err)
		}
		return LongValue(v), nil
	case 2:
		low, err := intArg(args[0])
		if err != nil {
			return nil, errs.Generic(0, "Long low bits must be numeric", err)
		}
		high, err := intArg(args[1])
		if err != nil {
			return nil, errs.Generic(0, "Long high bits must be numeric", err)
		}
		v := int64(uint32(high))<<32 | int64(uint32(low))
		return LongValue(v), nil
	default:
		return nil, errs.Generic(0, "Long expects 1 or 2 arguments", nil)
	}
}

func evalDate(args []ast.Node) (any, error) {
	switch len(args) {
	case 0:
		return DateValue{Time: time.Now().UTC()}, nil
	case 1:
		if s, ok := stringArg(args[0]); ok {
			t, err := parseDateString(s)
			if err != nil {
				return nil, errs.Generic(0, "invalid date string", err)
			}
			return DateValue{Time: t.UTC()}, nil
		}
		ms, err := intArg(args[0])
		if err != nil {
			return nil, errs.Generic(0, "Date argument must be a string or a millisecond timestamp", err)
		}
		return DateValue{Time: time.UnixMilli(ms).UTC()}, nil
	default:
		return evalDateComponents(args)
	}
}

func evalDateComponents(args []ast.Node) (any, error) {
	if len(args) < 3 || len(args) > 7 {
		return nil, errs.Generic(0, "Date with multiple arguments expects 3-7 numeric components", nil)
	}
	vals := make([]int64, 7)
	for i, a := range args {
		v, err := intArg(a)
		if err != nil {
			return nil, errs.Generic(0, fmt.Sprintf("Date component %d must be numeric", i), err)
		}
		vals[i] = v
	}
	year, month, day := vals[0], vals[1], vals[2]
	hour, min, sec, ms := vals[3], vals[4], vals[5], vals[6]
	t := time.Date(int(year), time.Month(month+1), int(day), int(hour), int(min), int(sec), int(ms)*int(time.Millisecond), time.UTC)
	return DateValue{Time: t}, nil
}

func parseDateString(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

func evalDecimal128(args []ast.Node) (any, error) {
	if len(args) != 1 {
		return nil, errs.Generic(0, "Decimal128 expects exactly 1 argument", nil)
	}
	s, ok := stringArg(args[0])
	if !ok {
		return nil, errs.Generic(0, "Decimal128 argument must be a string literal", nil)
	}
	dec, err := primitive.ParseDecimal128(s)
	if err != nil {
		return nil, errs.Generic(0, "malformed decimal literal", err)
	}
	return DecimalValue{Dec: dec}, nil
}

func evalTimestamp(args []ast.Node) (any, error) {
	if len(args) != 2 {
		return nil, errs.Generic(0, "Timestamp expects exactly 2 arguments", nil)
	}
	t, err := intArg(args[0])
	if err != nil {
		return nil, errs.Generic(0, "Timestamp low bits must be numeric", err)
	}
	i, err := intArg(args[1])
	if err != nil {
		return nil, errs.Generic(0, "Timestamp high bits must be numeric", err)
	}
	return TimestampValue{TS: primitive.Timestamp{T: uint32(t), I: uint32(i)}}, nil
}

func evalRegex(args []ast.Node) (any, error) {
	if len(args) == 0 {
		return nil, errs.Generic(0, "regex constructor requires at least a pattern", nil)
	}
	pattern, ok := stringArg(args[0])
	if !ok {
		return nil, errs.Generic(0, "regex pattern must be a string literal", nil)
	}
	var flags string
	if len(args) == 2 {
		flags, ok = stringArg(args[1])
		if !ok {
			return nil, errs.Generic(0, "regex flags must be a string literal", nil)
		}
	}
	return RegexValue{Source: pattern, Flags: flags}, nil
}

func stringArg(n ast.Node) (string, bool) {
	lit, ok := n.(*ast.Literal)
	if !ok || lit.Kind() != ast.KindString {
		return "", false
	}
	return lit.Value, true
}

func intArg(n ast.Node) (int64, error) {
	lit, ok := n.(*ast.Literal)
	if !ok {
		return 0, fmt.Errorf("not a numeric literal")
	}
	switch lit.Kind() {
	case ast.KindInteger, ast.KindHex, ast.KindOctal:
		return numlit.ParseInt(lit.Value)
	case ast.KindDecimal:
		f, err := numlit.ParseFloat(lit.Value)
		if err != nil {
			return 0, err
		}
		return int64(f), nil
	default:
		return 0, fmt.Errorf("not a numeric literal")
	}
}

// numericOrStringInt accepts either a numeric literal or a base-10 string
// literal, as Long/NumberLong's single-argument form does.
func numericOrStringInt(n ast.Node) (int64, error) {
	if lit, ok := n.(*ast.Literal); ok && lit.Kind() == ast.KindString {
		return strconv.ParseInt(strings.TrimSpace(lit.Value), 10, 64)
	}
	return intArg(n)
}
