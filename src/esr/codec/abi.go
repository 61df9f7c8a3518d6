// Package codec implements the ABI-driven action-data encode/decode
// boundary. A full ABI-aware serializer is assumed available as a library
// and out of scope here; this package defines the narrow interface the
// core needs (ActionCodec) plus a reference implementation covering the
// field types the built-in identity action and the seed-vector fixtures
// use.
package codec

import (
	"fmt"

	"github.com/yourusername/signingrequest/src/esr/abival"
)

// FieldType names one of the primitive ABI field types this reference
// codec understands.
type FieldType string

const (
	TypeName   FieldType = "name"
	TypeString FieldType = "string"
	TypeAsset  FieldType = "asset"
	TypeBytes  FieldType = "bytes"
	TypeUint64 FieldType = "uint64"
	TypeInt64  FieldType = "int64"
)

// Field is one struct field of an action type.
type Field struct {
	Name string
	Type FieldType
}

// ActionType describes one action's field layout.
type ActionType struct {
	Fields []Field
}

// ABI is an opaque-to-callers ABI object usable by the codec: a map from
// action name to its field layout. Real-world ABIs carry far more (struct
// inheritance, variants, type aliases); this reference implementation
// covers exactly the shapes the protocol's own fixtures need.
type ABI struct {
	Actions map[abival.Name]ActionType
}

// NewABI builds an ABI from a plain action-name -> ActionType map.
func NewABI(actions map[abival.Name]ActionType) ABI {
	return ABI{Actions: actions}
}

// ActionCodec is the interface the resolver and builder use to move
// between raw action-data bytes and the decoded Value tree.
type ActionCodec interface {
	EncodeActionData(abi ABI, action abival.Name, v abival.Value) ([]byte, error)
	DecodeActionData(abi ABI, action abival.Name, data []byte) (abival.Value, error)
}

// Default is the reference ActionCodec.
var Default ActionCodec = defaultCodec{}

type defaultCodec struct{}

func (defaultCodec) EncodeActionData(abi ABI, action abival.Name, v abival.Value) ([]byte, error) {
	at, ok := abi.Actions[action]
	if !ok {
		return nil, fmt.Errorf("codec: unknown action %s", action)
	}
	w := newWriter()
	for _, f := range at.Fields {
		fv, ok := v.Get(f.Name)
		if !ok {
			return nil, fmt.Errorf("codec: missing field %q for action %s", f.Name, action)
		}
		if err := w.writeField(f.Type, fv); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

func (defaultCodec) DecodeActionData(abi ABI, action abival.Name, data []byte) (abival.Value, error) {
	at, ok := abi.Actions[action]
	if !ok {
		return abival.Value{}, fmt.Errorf("codec: unknown action %s", action)
	}
	r := newReader(data)
	fields := make([]abival.Field, 0, len(at.Fields))
	for _, f := range at.Fields {
		fv, err := r.readField(f.Type)
		if err != nil {
			return abival.Value{}, fmt.Errorf("codec: field %q: %w", f.Name, err)
		}
		fields = append(fields, abival.Field{Key: f.Name, Value: fv})
	}
	return abival.RecordValue(fields), nil
}
