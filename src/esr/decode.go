package esr

import (
	"strings"

	"github.com/yourusername/signingrequest/src/esr/base64u"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/compressor"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

// schemePrefixes lists every URI prefix From accepts, longest match first
// so "esr://" is tried before "esr:". esr: and esr:// are equivalent on
// decode; web+esr: and web+esr:// are the accepted legacy alias.
var schemePrefixes = []string{"esr://", "esr:", "web+esr://", "web+esr:"}

// stripScheme removes a recognised URI prefix from uri, reporting failure
// if none matched.
func stripScheme(uri string) (string, error) {
	for _, prefix := range schemePrefixes {
		if strings.HasPrefix(uri, prefix) {
			return uri[len(prefix):], nil
		}
	}
	return "", newError(InvalidScheme, "uri does not start with a recognised esr scheme")
}

// From decodes a textual signing-request URI. comp may be nil to use the
// default raw-DEFLATE Compressor; pass a non-nil Compressor only if the
// frame might use a different scheme.
func From(uri string, comp Compressor) (*Request, error) {
	body, err := stripScheme(uri)
	if err != nil {
		return nil, err
	}
	data, err := base64u.Decode(body)
	if err != nil {
		return nil, wrapError(InvalidURI, "decoding base64url body", err)
	}
	return FromData(data, comp)
}

// FromData decodes a raw signing-request frame: header byte, payload,
// optional originator-signature trailer. comp may be nil to use the
// default raw-DEFLATE Compressor.
func FromData(data []byte, comp Compressor) (*Request, error) {
	if len(data) == 0 {
		return nil, newError(DecodeErrorKind, "empty frame")
	}
	headerByte, rest := data[0], data[1:]
	version, compressed := wire.SplitHeaderByte(headerByte)
	if version != wire.V2 && version != wire.V3 {
		return nil, newError(UnsupportedVersion, "frame version is neither 2 nor 3")
	}

	if compressed {
		if comp == nil {
			comp = compressor.Default
		}
		inflated, err := comp.Inflate(rest)
		if err != nil {
			return nil, wrapError(DecodeErrorKind, "inflating compressed frame", err)
		}
		rest = inflated
	}

	frame, err := wire.DecodeFrame(headerByte, rest)
	if err != nil {
		return nil, wrapError(DecodeErrorKind, "decoding frame body", err)
	}

	r, err := fromPayload(frame.Version, frame.Payload)
	if err != nil {
		return nil, err
	}
	if frame.Signature != nil {
		r.SetSignature(frame.Signer, *frame.Signature)
	}
	return r, nil
}

func fromPayload(version wire.Version, p wire.Payload) (*Request, error) {
	if p.Req.Kind == wire.KindIdentity && p.Flags&wire.FlagBroadcast != 0 {
		return nil, errIdentityBroadcast()
	}

	r := &Request{
		version:      version,
		kind:         p.Req.Kind,
		chainVariant: p.ChainID,
		flags:        p.Flags,
		callback:     p.Callback,
		info:         p.Info.Clone(),
	}

	switch p.Req.Kind {
	case wire.KindAction:
		r.action = p.Req.Action
	case wire.KindActions:
		r.actions = p.Req.Actions
	case wire.KindTransaction:
		r.transaction = p.Req.Transaction
	case wire.KindIdentity:
		r.identity = p.Req.Identity
	default:
		return nil, newError(DecodeErrorKind, "unknown request variant tag")
	}

	if p.ChainID.IsMultiChain() {
		if raw, ok := p.Info.Get(infoKeyChainIDs); ok && len(raw) > 0 {
			ids, err := decodeChainIDs(raw)
			if err != nil {
				return nil, wrapError(DecodeErrorKind, "decoding chain_ids info entry", err)
			}
			r.declaredIDs = ids
		}
	}

	return r, nil
}

// FromTransaction builds a Request directly from an already-serialized
// transaction body, as if it had been the sole input to a builder call:
// single chain id, broadcast default, no callback or info unless added
// afterwards via the mutation surface.
func FromTransaction(id chain.ID, serialized []byte, opts Options) (*Request, error) {
	tx, err := wire.ReadTransaction(wire.NewReader(serialized))
	if err != nil {
		return nil, wrapError(DecodeErrorKind, "decoding serialized transaction", err)
	}
	return CreateSync(Descriptor{
		Transaction: &tx,
		ChainID:     &id,
	}, opts, nil)
}
