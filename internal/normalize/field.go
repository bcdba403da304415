package normalize

// Kind is the primitive a field is coerced to.
type Kind int

const (
	KindInt Kind = iota
	KindNumber
	KindString
	KindBool
	KindTimestamp
	KindDecimalString
	KindList
	KindObject
	KindCounts
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTimestamp:
		return "timestamp"
	case KindDecimalString:
		return "decimal_string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	case KindCounts:
		return "counts"
	default:
		return "unknown"
	}
}

// Field declares one member of a Shape. Build it with the constructors below
// and refine it with the modifiers; modifiers return a copy.
type Field struct {
	Name     string
	Kind     Kind
	Optional bool
	Default  any
	Elem     *Shape

	nonEmpty bool
	oneOf    []string

	hasLo, hasHi bool
	lo, hi       float64
	loExclusive  bool
	clamp        bool
}

// Int declares an integer field. Only integral, finite JSON numbers are
// accepted; numeric strings are not.
func Int(name string, def int64) Field {
	return Field{Name: name, Kind: KindInt, Default: def}
}

// OptionalInt declares an integer field that is omitted when invalid.
func OptionalInt(name string) Field {
	return Field{Name: name, Kind: KindInt, Optional: true}
}

// Number declares a finite floating point field.
func Number(name string, def float64) Field {
	return Field{Name: name, Kind: KindNumber, Default: def}
}

// OptionalNumber declares a number field that is omitted when invalid.
func OptionalNumber(name string) Field {
	return Field{Name: name, Kind: KindNumber, Optional: true}
}

// String declares a string field.
func String(name, def string) Field {
	return Field{Name: name, Kind: KindString, Default: def}
}

// OptionalString declares a string field kept only when non-blank.
func OptionalString(name string) Field {
	return Field{Name: name, Kind: KindString, Optional: true, nonEmpty: true}
}

// Bool declares a boolean field. Only a literal boolean overrides def.
func Bool(name string, def bool) Field {
	return Field{Name: name, Kind: KindBool, Default: def}
}

// OptionalBool declares a boolean kept only when the payload carries a literal boolean.
func OptionalBool(name string) Field {
	return Field{Name: name, Kind: KindBool, Optional: true}
}

// Timestamp declares a field that always ends up as an RFC 3339 string.
func Timestamp(name string) Field {
	return Field{Name: name, Kind: KindTimestamp}
}

// OptionalTimestamp declares a timestamp that is omitted when missing.
func OptionalTimestamp(name string) Field {
	return Field{Name: name, Kind: KindTimestamp, Optional: true}
}

// DecimalString declares an identifier that may arrive as a number or as a
// digit string and is always rendered as a decimal string.
func DecimalString(name string) Field {
	return Field{Name: name, Kind: KindDecimalString, Default: ""}
}

// List declares an array of records; it is never nil after normalization.
func List(name string, elem *Shape) Field {
	return Field{Name: name, Kind: KindList, Elem: elem}
}

// Object declares a nested record; a non-object becomes the nested defaults.
func Object(name string, elem *Shape) Field {
	return Field{Name: name, Kind: KindObject, Elem: elem}
}

// Counts declares a string-keyed map of integers, e.g. a rating histogram.
func Counts(name string) Field {
	return Field{Name: name, Kind: KindCounts}
}

// NonEmpty rejects strings that are blank after trimming.
func (f Field) NonEmpty() Field {
	f.nonEmpty = true
	return f
}

// OneOf restricts a string field to the given values.
func (f Field) OneOf(values ...string) Field {
	f.oneOf = append([]string(nil), values...)
	return f
}

// NonNegative rejects values below zero.
func (f Field) NonNegative() Field {
	f.hasLo, f.lo, f.loExclusive = true, 0, false
	return f
}

// Positive rejects values that are zero or below.
func (f Field) Positive() Field {
	f.hasLo, f.lo, f.loExclusive = true, 0, true
	return f
}

// Within rejects values outside [lo, hi].
func (f Field) Within(lo, hi float64) Field {
	f.hasLo, f.lo, f.loExclusive = true, lo, false
	f.hasHi, f.hi = true, hi
	f.clamp = false
	return f
}

// Clamp pulls finite values into [lo, hi] instead of rejecting them.
func (f Field) Clamp(lo, hi float64) Field {
	f.hasLo, f.lo, f.loExclusive = true, lo, false
	f.hasHi, f.hi = true, hi
	f.clamp = true
	return f
}

// bounded applies the numeric constraints; ok is false when v must be
// replaced by the default.
func (f Field) bounded(v float64) (float64, bool) {
	if f.clamp {
		if f.hasLo && v < f.lo {
			v = f.lo
		}
		if f.hasHi && v > f.hi {
			v = f.hi
		}
		return v, true
	}
	if f.hasLo {
		if f.loExclusive && v <= f.lo {
			return v, false
		}
		if !f.loExclusive && v < f.lo {
			return v, false
		}
	}
	if f.hasHi && v > f.hi {
		return v, false
	}
	return v, true
}

func (f Field) acceptsString(s string) bool {
	if f.nonEmpty && isBlank(s) {
		return false
	}
	if len(f.oneOf) == 0 {
		return true
	}
	for _, v := range f.oneOf {
		if s == v {
			return true
		}
	}
	return false
}
