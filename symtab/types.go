// Package symtab builds the fixed, read-only table of identifiers the
// translator recognizes: JavaScript builtins, the BSON classes, and the
// numeric shim constructors. See spec.md §3 and §4.1.
package symtab

// ID is a Type's stable name, e.g. "_string", "_object", "Code", "ObjectId".
type ID string

// Leaf and structural type ids. These are the targets a literal node's
// syntactic form resolves to during walking.
const (
	String    ID = "_string"
	Integer   ID = "_integer"
	Decimal   ID = "_decimal"
	Hex       ID = "_hex"
	Octal     ID = "_octal"
	Numeric   ID = "_numeric" // sentinel union: Integer|Decimal|Hex|Octal
	Boolean   ID = "_boolean"
	Null      ID = "_null"
	Undefined ID = "_undefined"
	Object    ID = "_object"
	Array     ID = "_array"
	Regex     ID = "_regex"
)

// CallableKind distinguishes plain values from constructors and functions.
type CallableKind int

const (
	NotCallable CallableKind = iota
	Function
	Constructor
)

// optionalMarker names the "optional" sentinel of the slot model. It is not
// placed in any Slot's Accepts set: OptionalSlot records optionality in
// Slot.Optional instead, so it is never a matchable type id.
const optionalMarker ID = "_optional"

// Slot is one position in a constructor or function's argument schema: a
// non-empty set of acceptable type ids, possibly optional.
type Slot struct {
	Accepts  []ID
	Optional bool
}

// RequiredSlot builds a mandatory slot accepting any of the given ids.
func RequiredSlot(ids ...ID) Slot {
	return Slot{Accepts: ids}
}

// OptionalSlot builds a slot that may be omitted from a call.
func OptionalSlot(ids ...ID) Slot {
	return Slot{Accepts: ids, Optional: true}
}

// AcceptsType reports whether typeID satisfies this slot, expanding the
// Numeric sentinel to its four leaf forms.
func (s Slot) AcceptsType(typeID ID) bool {
	for _, accepted := range s.Accepts {
		if accepted == typeID {
			return true
		}
		if accepted == Numeric && isNumericLeaf(typeID) {
			return true
		}
	}
	return false
}

func isNumericLeaf(id ID) bool {
	switch id {
	case Integer, Decimal, Hex, Octal:
		return true
	}
	return false
}

// Type is a tagged value: an identifier's shape in the symbol table.
type Type struct {
	IDValue  ID
	Callable CallableKind
	// Args is the ordered parameter schema enforced when this Type is
	// called directly. Nil for Types with no direct call form (e.g. a
	// constructor whose own emitter hook does custom variadic checking,
	// such as Date).
	Args []Slot
	// Attr maps attribute names to their Type, for member access and
	// chained calls (Long.fromBits, Long.toString).
	Attr map[string]*Type
	// Instance is the Type yielded when this value is called (`new X()`
	// or `X()`). Nil for non-callable Types.
	Instance *Type
}

func (t *Type) ID() ID { return t.IDValue }

// AttrType resolves an attribute name by walking up this Type's instance
// chain the way spec.md §4.2 describes for attribute access: look on this
// Type, then its Instance, and so on, until found or the chain ends.
func (t *Type) AttrType(name string) (*Type, bool) {
	for cur := t; cur != nil; cur = cur.Instance {
		if cur.Attr != nil {
			if at, ok := cur.Attr[name]; ok {
				return at, true
			}
		}
		if cur.Instance == cur {
			break
		}
	}
	return nil, false
}
