package symtab

// Table is the immutable mapping from identifier name to Type built once at
// startup (spec.md §3). It is read-only for the lifetime of every
// translation; multiple translations may share one Table safely.
type Table struct {
	symbols map[string]*Type
}

// Lookup resolves a top-level identifier name. The second result is false
// for any name outside the fixed set — the walker turns that into a
// reference error (spec.md §4.2).
func (t *Table) Lookup(name string) (*Type, bool) {
	ty, ok := t.symbols[name]
	return ty, ok
}

// New builds the full recognized symbol table: JavaScript builtins, every
// BSON class from spec.md §1, and the numeric shim names from spec.md §3.
func New() *Table {
	t := &Table{symbols: make(map[string]*Type)}

	scalarCtor := func(id ID, argSlots ...Slot) *Type {
		if argSlots == nil {
			argSlots = []Slot{}
		}
		instance := &Type{IDValue: id}
		return &Type{IDValue: id, Callable: Constructor, Args: argSlots, Instance: instance}
	}

	// --- BSON classes (spec.md §1) ---

	code := scalarCtor("Code",
		RequiredSlot(String),
		OptionalSlot(Object),
	)
	t.symbols["Code"] = code

	objectID := scalarCtor("ObjectId",
		OptionalSlot(String),
	)
	t.symbols["ObjectId"] = objectID

	binary := scalarCtor("Binary",
		RequiredSlot(String),
		OptionalSlot(Numeric),
	)
	t.symbols["Binary"] = binary

	double := scalarCtor("Double",
		RequiredSlot(String, Numeric),
	)
	t.symbols["Double"] = double

	long := &Type{IDValue: "Long", Callable: Constructor,
		Args: []Slot{RequiredSlot(String, Numeric), OptionalSlot(Numeric)},
	}
	longInstance := &Type{IDValue: "Long", Attr: map[string]*Type{
		"toString": {IDValue: "_function", Callable: Function,
			Args:     []Slot{OptionalSlot(Numeric)},
			Instance: &Type{IDValue: String},
		},
	}}
	long.Instance = longInstance
	long.Attr = map[string]*Type{
		"fromBits": {IDValue: "_function", Callable: Function,
			Args:     []Slot{RequiredSlot(Numeric), RequiredSlot(Numeric)},
			Instance: longInstance,
		},
	}
	t.symbols["Long"] = long

	int32Type := scalarCtor("Int32", RequiredSlot(String, Numeric))
	t.symbols["Int32"] = int32Type

	number := scalarCtor("Number", RequiredSlot(String, Numeric))
	t.symbols["Number"] = number

	maxKey := scalarCtor("MaxKey")
	t.symbols["MaxKey"] = maxKey

	minKey := scalarCtor("MinKey")
	t.symbols["MinKey"] = minKey

	symbol := scalarCtor("Symbol", RequiredSlot(String))
	t.symbols["Symbol"] = symbol

	timestamp := scalarCtor("Timestamp",
		RequiredSlot(Integer),
		RequiredSlot(Integer),
	)
	t.symbols["Timestamp"] = timestamp

	dbRef := scalarCtor("DBRef",
		RequiredSlot(String),
		RequiredSlot(Object),
		OptionalSlot(String),
	)
	t.symbols["DBRef"] = dbRef

	bsonRegExp := scalarCtor("BSONRegExp",
		RequiredSlot(String),
		OptionalSlot(String),
	)
	t.symbols["BSONRegExp"] = bsonRegExp

	decimal128 := scalarCtor("Decimal128", RequiredSlot(String))
	t.symbols["Decimal128"] = decimal128

	// --- JavaScript builtins ---

	// Date's own arity (0, 1, or 3-7 numeric/string args) does not fit the
	// fixed-slot model; its dedicated emitter hook performs custom
	// variadic checking, so Args is left nil (spec.md §4.3 "Date()").
	t.symbols["Date"] = &Type{IDValue: "Date", Callable: Constructor,
		Instance: &Type{IDValue: "Date"},
	}

	t.symbols["RegExp"] = &Type{IDValue: "RegExp", Callable: Constructor,
		Args:     []Slot{RequiredSlot(String), OptionalSlot(String)},
		Instance: &Type{IDValue: Regex},
	}

	objectNS := &Type{IDValue: "Object", Callable: NotCallable}
	objectNS.Attr = map[string]*Type{
		// IDValue "Object.create" (rather than the generic "_function") so
		// the target emitters can register a dedicated hook for it, the way
		// they do for every other recognized host call.
		"create": {IDValue: "Object.create", Callable: Function,
			Args:     []Slot{RequiredSlot(Object)},
			Instance: &Type{IDValue: Object},
		},
	}
	t.symbols["Object"] = objectNS

	// --- Numeric shim names (spec.md §3) ---
	// Aliases whose instance type and argument schema mirror the BSON
	// constructor they shim: NumberInt -> Int32, NumberLong -> Long,
	// NumberDecimal -> Decimal128, ISODate -> Date (SPEC_FULL.md §12).
	t.symbols["NumberInt"] = &Type{IDValue: "Int32", Callable: Constructor,
		Args: int32Type.Args, Instance: int32Type.Instance,
	}
	t.symbols["NumberLong"] = &Type{IDValue: "Long", Callable: Constructor,
		Args: long.Args, Attr: long.Attr, Instance: long.Instance,
	}
	t.symbols["NumberDecimal"] = &Type{IDValue: "Decimal128", Callable: Constructor,
		Args: decimal128.Args, Instance: decimal128.Instance,
	}
	t.symbols["ISODate"] = &Type{IDValue: "Date", Callable: Constructor,
		Instance: t.symbols["Date"].Instance,
	}

	return t
}
