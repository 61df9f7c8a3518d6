package esr

import (
	"crypto/sha256"

	"github.com/yourusername/signingrequest/src/esr/wire"
)

// signaturePreimagePrefix is the 7-byte domain separator placed between the
// version byte and the payload before digesting, so an originator signature
// can never be confused with any other EOSIO-family signed digest.
const signaturePreimagePrefix = "request"

func (r *Request) toPayload() wire.Payload {
	variant := wire.RequestVariant{Kind: r.kind}
	switch r.kind {
	case wire.KindAction:
		variant.Action = r.action
	case wire.KindActions:
		variant.Actions = r.actions
	case wire.KindTransaction:
		variant.Transaction = r.transaction
	case wire.KindIdentity:
		variant.Identity = r.identity
	}
	return wire.Payload{
		ChainID:  r.chainVariant,
		Req:      variant,
		Flags:    r.flags,
		Callback: r.callback,
		Info:     r.info,
	}
}

// GetData returns the serialized request payload, pre-compression and
// pre-signature.
func (r *Request) GetData() []byte {
	return wire.EncodePayloadBytes(r.version, r.toPayload())
}

// GetSignatureData returns the exact bytes an originator signature is
// computed over: the header byte (uncompressed, since the signature
// covers the logical payload, not its wire encoding), the domain
// separator, and the serialized payload.
func (r *Request) GetSignatureData() []byte {
	out := make([]byte, 0, 1+len(signaturePreimagePrefix)+32)
	out = append(out, wire.HeaderByte(r.version, false))
	out = append(out, signaturePreimagePrefix...)
	out = append(out, r.GetData()...)
	return out
}

// GetSignatureDigest returns the SHA-256 digest a SignatureProvider signs
// over.
func (r *Request) GetSignatureDigest() [32]byte {
	return sha256.Sum256(r.GetSignatureData())
}

// Sign computes the signing digest and asks provider to sign it, storing
// the result as the request's originator signature.
func (r *Request) Sign(provider SignatureProvider) error {
	digest := r.GetSignatureDigest()
	signer, sig, err := provider.Sign(digest)
	if err != nil {
		return wrapError(NeedSignature, "signature provider failed", err)
	}
	r.signer = signer
	r.signature = &sig
	return nil
}
