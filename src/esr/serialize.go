package esr

import (
	"encoding/json"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/base64u"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/compressor"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

// DefaultScheme is the URI scheme String uses when given an empty scheme.
const DefaultScheme = "esr"

func (r *Request) encodeFrame(compress bool, comp Compressor) (headerByte byte, body []byte) {
	payload := wire.EncodePayloadBytes(r.version, r.toPayload())
	trailer := wire.EncodeSignatureTrailer(r.signer, r.signature)
	raw := append(append([]byte(nil), payload...), trailer...)

	if !compress {
		return wire.HeaderByte(r.version, false), raw
	}
	if comp == nil {
		comp = compressor.Default
	}
	deflated, err := comp.Deflate(raw)
	if err != nil || len(deflated) >= len(raw) {
		return wire.HeaderByte(r.version, false), raw
	}
	return wire.HeaderByte(r.version, true), deflated
}

// Encode serializes r to its binary wire form, picking whichever of the
// compressed/uncompressed encodings is smaller when compress is true. comp
// may be nil to use the default raw-DEFLATE Compressor.
func (r *Request) Encode(compress bool, comp Compressor) []byte {
	headerByte, body := r.encodeFrame(compress, comp)
	return append([]byte{headerByte}, body...)
}

// String renders r as a scheme URI over the unpadded base64url text
// carrier. slashes controls "esr:" vs "esr://".
func (r *Request) String(scheme string, slashes bool, comp Compressor) string {
	if scheme == "" {
		scheme = DefaultScheme
	}
	sep := ":"
	if slashes {
		sep = "://"
	}
	return scheme + sep + base64u.Encode(r.Encode(true, comp))
}

// ToJSON renders a diagnostic JSON view of r. It is not a wire format and
// is not parsed back by From/FromData.
func (r *Request) ToJSON() ([]byte, error) {
	type jsonView struct {
		Version  int              `json:"version"`
		Kind     string            `json:"kind"`
		Callback string            `json:"callback,omitempty"`
		Flags    byte              `json:"flags"`
		Info     map[string]string `json:"info,omitempty"`
	}
	info := make(map[string]string, len(r.info))
	for _, p := range r.info {
		info[p.Key] = string(p.Value)
	}
	return json.MarshalIndent(jsonView{
		Version:  int(r.version),
		Kind:     kindName(r.kind),
		Callback: r.callback,
		Flags:    r.flags,
		Info:     info,
	}, "", "  ")
}

func kindName(k wire.RequestKind) string {
	switch k {
	case wire.KindAction:
		return "action"
	case wire.KindActions:
		return "action[]"
	case wire.KindTransaction:
		return "transaction"
	case wire.KindIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// Clone returns a deep, independent copy of r.
func (r *Request) Clone() *Request {
	out := &Request{
		version:      r.version,
		kind:         r.kind,
		chainVariant: r.chainVariant,
		flags:        r.flags,
		callback:     r.callback,
		signer:       r.signer,
	}
	out.action = cloneAction(r.action)
	out.actions = make([]abival.Action, len(r.actions))
	for i, a := range r.actions {
		out.actions[i] = cloneAction(a)
	}
	out.transaction = r.transaction.Clone()
	out.identity = r.identity
	if r.identity.Permission != nil {
		p := *r.identity.Permission
		out.identity.Permission = &p
	}
	out.declaredIDs = append([]chain.ID(nil), r.declaredIDs...)
	out.info = r.info.Clone()
	if r.signature != nil {
		sig := *r.signature
		out.signature = &sig
	}
	return out
}

func cloneAction(a abival.Action) abival.Action {
	out := a
	out.Authorization = append([]abival.PermissionLevel(nil), a.Authorization...)
	out.Data = append([]byte(nil), a.Data...)
	if a.Decoded != nil {
		v := *a.Decoded
		out.Decoded = &v
	}
	return out
}
