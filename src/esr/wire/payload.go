package wire

import (
	"fmt"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/chain"
)

// Version identifies which on-wire IdentityBody layout is in play.
type Version uint8

const (
	V2 Version = 2
	V3 Version = 3
)

// RequestKind tags the RequestVariant.
type RequestKind uint8

const (
	KindAction      RequestKind = 0
	KindActions     RequestKind = 1
	KindTransaction RequestKind = 2
	KindIdentity    RequestKind = 3
)

// IdentityBody is the v2/v3 identity request body. Scope is only
// meaningful (and only present on the wire) for v3 requests.
type IdentityBody struct {
	Scope      abival.Name // v3 only
	Permission *abival.PermissionLevel
}

// RequestVariant is the tagged union carried by a RequestPayload.
type RequestVariant struct {
	Kind        RequestKind
	Action      abival.Action
	Actions     []abival.Action
	Transaction abival.Transaction
	Identity    IdentityBody
}

// Payload is the versioned request container; protocol version is carried
// out of band in the frame header and passed explicitly to the
// (de)serializers below since IdentityBody's layout depends on it.
type Payload struct {
	ChainID  chain.Variant
	Req      RequestVariant
	Flags    byte
	Callback string
	Info     abival.InfoList
}

const (
	FlagBroadcast  byte = 1 << 0
	FlagBackground byte = 1 << 1
)

func writeOptionalPermission(w *Writer, p *abival.PermissionLevel) {
	if p == nil {
		w.WriteByte(0)
		return
	}
	w.WriteByte(1)
	WritePermissionLevel(w, *p)
}

func readOptionalPermission(r *Reader) (*abival.PermissionLevel, error) {
	present, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	p, err := ReadPermissionLevel(r)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// WriteIdentityBody serializes an identity request body under version;
// Scope is only written for V3.
func WriteIdentityBody(w *Writer, version Version, id IdentityBody) {
	if version == V3 {
		w.WriteName(id.Scope)
	}
	writeOptionalPermission(w, id.Permission)
}

// ReadIdentityBody is the inverse of WriteIdentityBody.
func ReadIdentityBody(r *Reader, version Version) (IdentityBody, error) {
	var id IdentityBody
	if version == V3 {
		scope, err := r.ReadName()
		if err != nil {
			return id, err
		}
		id.Scope = scope
	}
	perm, err := readOptionalPermission(r)
	if err != nil {
		return id, err
	}
	id.Permission = perm
	return id, nil
}

// WritePayload serializes p under the given protocol version.
func WritePayload(w *Writer, version Version, p Payload) {
	WriteChainVariant(w, p.ChainID)
	w.WriteByte(byte(p.Req.Kind))
	switch p.Req.Kind {
	case KindAction:
		WriteAction(w, p.Req.Action)
	case KindActions:
		WriteActions(w, p.Req.Actions)
	case KindTransaction:
		WriteTransaction(w, p.Req.Transaction)
	case KindIdentity:
		WriteIdentityBody(w, version, p.Req.Identity)
	}
	w.WriteByte(p.Flags)
	w.WriteString(p.Callback)
	WriteInfoList(w, p.Info)
}

// ReadPayload deserializes a Payload under the given protocol version.
func ReadPayload(r *Reader, version Version) (Payload, error) {
	var p Payload
	var err error
	if p.ChainID, err = ReadChainVariant(r); err != nil {
		return p, err
	}
	tag, err := r.ReadByte()
	if err != nil {
		return p, err
	}
	p.Req.Kind = RequestKind(tag)
	switch p.Req.Kind {
	case KindAction:
		if p.Req.Action, err = ReadAction(r); err != nil {
			return p, err
		}
	case KindActions:
		if p.Req.Actions, err = ReadActions(r); err != nil {
			return p, err
		}
	case KindTransaction:
		if p.Req.Transaction, err = ReadTransaction(r); err != nil {
			return p, err
		}
	case KindIdentity:
		if p.Req.Identity, err = ReadIdentityBody(r, version); err != nil {
			return p, err
		}
	default:
		return p, fmt.Errorf("wire: unknown request variant tag %d", tag)
	}
	if p.Flags, err = r.ReadByte(); err != nil {
		return p, err
	}
	if p.Callback, err = r.ReadString(); err != nil {
		return p, err
	}
	if p.Info, err = ReadInfoList(r); err != nil {
		return p, err
	}
	return p, nil
}
