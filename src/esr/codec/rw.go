package codec

import (
	"fmt"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

type writer struct{ w *wire.Writer }

func newWriter() *writer { return &writer{w: wire.NewWriter()} }

func (w *writer) bytes() []byte { return w.w.Bytes() }

func (w *writer) writeField(t FieldType, v abival.Value) error {
	switch t {
	case TypeName:
		if v.Kind != abival.KindName {
			return fmt.Errorf("codec: expected name value")
		}
		w.w.WriteName(v.Name)
	case TypeString:
		if v.Kind != abival.KindString {
			return fmt.Errorf("codec: expected string value")
		}
		w.w.WriteString(v.Str)
	case TypeBytes:
		if v.Kind != abival.KindBytes {
			return fmt.Errorf("codec: expected bytes value")
		}
		w.w.WriteBytes(v.Bytes)
	case TypeUint64:
		if v.Kind != abival.KindInt {
			return fmt.Errorf("codec: expected int value")
		}
		w.w.WriteUint64(uint64(v.Int))
	case TypeInt64:
		if v.Kind != abival.KindInt {
			return fmt.Errorf("codec: expected int value")
		}
		w.w.WriteUint64(uint64(v.Int))
	case TypeAsset:
		if v.Kind != abival.KindString {
			return fmt.Errorf("codec: expected string value for asset")
		}
		asset, err := ParseAsset(v.Str)
		if err != nil {
			return err
		}
		w.w.WriteUint64(uint64(asset.Amount))
		w.w.WriteUint64(asset.symbolCode())
	default:
		return fmt.Errorf("codec: unsupported field type %q", t)
	}
	return nil
}

type reader struct{ r *wire.Reader }

func newReader(data []byte) *reader { return &reader{r: wire.NewReader(data)} }

func (r *reader) readField(t FieldType) (abival.Value, error) {
	switch t {
	case TypeName:
		n, err := r.r.ReadName()
		if err != nil {
			return abival.Value{}, err
		}
		return abival.NameValue(n), nil
	case TypeString:
		s, err := r.r.ReadString()
		if err != nil {
			return abival.Value{}, err
		}
		return abival.StringValue(s), nil
	case TypeBytes:
		b, err := r.r.ReadBytes()
		if err != nil {
			return abival.Value{}, err
		}
		return abival.BytesValue(b), nil
	case TypeUint64, TypeInt64:
		v, err := r.r.ReadUint64()
		if err != nil {
			return abival.Value{}, err
		}
		return abival.IntValue(int64(v)), nil
	case TypeAsset:
		amount, err := r.r.ReadUint64()
		if err != nil {
			return abival.Value{}, err
		}
		code, err := r.r.ReadUint64()
		if err != nil {
			return abival.Value{}, err
		}
		precision, symbol := symbolFromCode(code)
		asset := Asset{Amount: int64(amount), Precision: precision, Symbol: symbol}
		return abival.StringValue(asset.String()), nil
	default:
		return abival.Value{}, fmt.Errorf("codec: unsupported field type %q", t)
	}
}
