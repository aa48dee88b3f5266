// Package sandbox implements the Sandbox Evaluator (spec.md §4.4): a
// capability-restricted constant folder that recovers the canonical host
// value of a compile-time-evaluable constructor call so the target
// emitters can embed it as a literal.
//
// The source evaluates a textual fragment wrapped as `__result = <fragment>`
// in a throwaway interpreter context. This package instead folds the
// already-parsed ast.Node directly — the translator already holds a
// structured tree by the time the walker reaches a recognized call, so
// re-serializing it to text and re-lexing it would just be busywork with
// no behavioral difference (see DESIGN.md).
package sandbox

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LongValue is the canonical signed-64 value behind Long/NumberLong.
type LongValue int64

// RegexValue is the canonical (source, flags) pair behind RegExp literals,
// the RegExp constructor, and BSONRegExp.
type RegexValue struct {
	Source string
	Flags  string
}

// DateValue is a Date/ISODate instance decomposed into its UTC components.
type DateValue struct {
	Time time.Time
}

// Year etc. expose the UTC-decomposed fields emitters embed.
func (d DateValue) Year() int   { return d.Time.Year() }
func (d DateValue) Month() int  { return int(d.Time.Month()) - 1 } // JS months are 0-indexed
func (d DateValue) Day() int    { return d.Time.Day() }
func (d DateValue) Hour() int   { return d.Time.Hour() }
func (d DateValue) Minute() int { return d.Time.Minute() }
func (d DateValue) Second() int { return d.Time.Second() }
func (d DateValue) Milli() int  { return d.Time.Nanosecond() / int(time.Millisecond) }

// ObjectIDValue wraps the real driver type so Hex() is authoritative.
type ObjectIDValue struct {
	ID primitive.ObjectID
}

// BinaryValue wraps the real driver type. The subtype byte is the numeric
// argument as written, not checked against the BSON subtype constants; each
// target emitter maps it to a name through its own subtype table.
type BinaryValue struct {
	Bin primitive.Binary
}

// DecimalValue wraps the real driver type so String() is the canonical
// decimal text the emitters embed.
type DecimalValue struct {
	Dec primitive.Decimal128
}

// TimestampValue is the (T, I) pair behind Timestamp(low, high).
type TimestampValue struct {
	TS primitive.Timestamp
}
