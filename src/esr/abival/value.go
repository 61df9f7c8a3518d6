package abival

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindName ValueKind = iota
	KindBytes
	KindInt
	KindString
	KindArray
	KindRecord
)

// Field is one named field of a Record value. Fields are kept in an
// ordered slice (not a map) so that re-encoding under an ABI can walk them
// in declaration order.
type Field struct {
	Key   string
	Value Value
}

// Value is the generic decoded-action-data tree: Name | Bytes | Int |
// String | Array | Record. Action-data decoding and placeholder
// substitution are expressed as a recursive walk over this type rather
// than via reflection.
type Value struct {
	Kind   ValueKind
	Name   Name
	Bytes  []byte
	Int    int64
	Str    string
	Array  []Value
	Record []Field
}

func NameValue(n Name) Value     { return Value{Kind: KindName, Name: n} }
func BytesValue(b []byte) Value  { return Value{Kind: KindBytes, Bytes: b} }
func IntValue(i int64) Value     { return Value{Kind: KindInt, Int: i} }
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func ArrayValue(vs []Value) Value {
	return Value{Kind: KindArray, Array: vs}
}
func RecordValue(fields []Field) Value {
	return Value{Kind: KindRecord, Record: fields}
}

// Get returns the value of the named field in a Record, or the zero Value
// and false if absent or v is not a Record.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindRecord {
		return Value{}, false
	}
	for _, f := range v.Record {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// WithField returns a copy of v (which must be a Record) with key set to
// val, appending a new field if key is not already present.
func (v Value) WithField(key string, val Value) Value {
	fields := make([]Field, len(v.Record))
	copy(fields, v.Record)
	for i := range fields {
		if fields[i].Key == key {
			fields[i].Value = val
			return Value{Kind: KindRecord, Record: fields}
		}
	}
	fields = append(fields, Field{Key: key, Value: val})
	return Value{Kind: KindRecord, Record: fields}
}

// maxSubstitutionDepth bounds the recursion in SubstitutePlaceholders so a
// pathologically deep Value tree can't blow the stack.
const maxSubstitutionDepth = 128

// SubstitutePlaceholders recursively replaces PlaceholderActor with actor
// and PlaceholderPermission with permission anywhere a Name appears in v,
// visiting arrays and records.
func SubstitutePlaceholders(v Value, actor, permission Name) Value {
	return substitute(v, actor, permission, 0)
}

func substitute(v Value, actor, permission Name, depth int) Value {
	if depth >= maxSubstitutionDepth {
		return v
	}
	switch v.Kind {
	case KindName:
		switch v.Name {
		case PlaceholderActor:
			return NameValue(actor)
		case PlaceholderPermission:
			return NameValue(permission)
		default:
			return v
		}
	case KindArray:
		out := make([]Value, len(v.Array))
		for i, e := range v.Array {
			out[i] = substitute(e, actor, permission, depth+1)
		}
		return ArrayValue(out)
	case KindRecord:
		out := make([]Field, len(v.Record))
		for i, f := range v.Record {
			out[i] = Field{Key: f.Key, Value: substitute(f.Value, actor, permission, depth+1)}
		}
		return RecordValue(out)
	default:
		return v
	}
}

// HasPlaceholder reports whether any Name anywhere within v is a
// placeholder. Used by tests to verify that resolution leaves no
// placeholder behind.
func HasPlaceholder(v Value) bool {
	switch v.Kind {
	case KindName:
		return v.Name.IsPlaceholder()
	case KindArray:
		for _, e := range v.Array {
			if HasPlaceholder(e) {
				return true
			}
		}
		return false
	case KindRecord:
		for _, f := range v.Record {
			if HasPlaceholder(f.Value) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
