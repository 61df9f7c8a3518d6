package esr

import (
	"strconv"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/callback"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/eosname"
	"github.com/yourusername/signingrequest/src/esr/proof"
	"github.com/yourusername/signingrequest/src/esr/resolve"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

// ResolvedRequest is the outcome of resolution: the originating request,
// the chosen signer and chain id, and both the signable and decoded
// transactions. It is never mutated after construction; resolution always
// produces a new value without touching the source request.
type ResolvedRequest struct {
	request *Request
	result  resolve.Result
}

// Signer returns the permission level the transaction was resolved
// against.
func (rr *ResolvedRequest) Signer() abival.PermissionLevel { return rr.result.Signer }

// ChainID returns the chain id resolution chose.
func (rr *ResolvedRequest) ChainID() chain.ID { return rr.result.ChainID }

// Transaction returns the signable transaction: concrete header, encoded
// action data, no decoded view.
func (rr *ResolvedRequest) Transaction() abival.Transaction { return rr.result.Transaction.Clone() }

// ResolvedTransaction returns the same transaction with decoded action
// data attached to every action.
func (rr *ResolvedRequest) ResolvedTransaction() abival.Transaction {
	return rr.result.ResolvedTransaction.Clone()
}

// SerializedTransaction returns the wire-serialized signable transaction.
func (rr *ResolvedRequest) SerializedTransaction() []byte {
	w := wire.NewWriter()
	wire.WriteTransaction(w, rr.result.Transaction)
	return w.Bytes()
}

// SigningData returns the exact bytes a wallet hashes to produce the
// signing digest: chain id || serialized transaction ||
// 32 zero bytes (the context-free-actions digest, always zero since this
// protocol never carries any context-free actions of its own), the same
// shape proof.Digest uses for identity proofs.
func (rr *ResolvedRequest) SigningData() []byte {
	w := wire.NewWriter()
	wire.WriteTransaction(w, rr.result.Transaction)
	var zero [32]byte
	out := make([]byte, 0, 32+len(w.Bytes())+32)
	out = append(out, rr.result.ChainID[:]...)
	out = append(out, w.Bytes()...)
	out = append(out, zero[:]...)
	return out
}

// SigningDigest returns the SHA-256 of SigningData: the digest a
// SignatureProvider signs to produce a broadcastable transaction signature.
func (rr *ResolvedRequest) SigningDigest() [32]byte {
	return proof.Digest(rr.result.ChainID, rr.result.Transaction)
}

// GetCallback builds the ResolvedCallback for this request, substituting
// signatures into the callback URL template. blockNum is an optional hint
// substituted under the "bn" key. Returns (nil, nil) if the request
// carries no callback: a callback is absent exactly when the request's
// callback string is empty.
func (rr *ResolvedRequest) GetCallback(signatures []abival.Signature, blockNum *uint32) (*callback.Resolved, error) {
	if rr.request.callback == "" {
		return nil, nil
	}
	payload := callback.Payload{
		Signatures:  signatures,
		Transaction: rr.result.Transaction,
		ChainID:     rr.result.ChainID,
		RequestURI:  rr.request.String(DefaultScheme, false, nil),
		Signer:      rr.result.Signer,
		BlockNum:    blockNum,
	}
	resolved, err := callback.Build(rr.request.callback, rr.request.flags&wire.FlagBackground != 0, payload, eosname.EncodeSignature)
	if err != nil {
		return nil, wrapError(NeedSignature, "building callback", err)
	}
	return &resolved, nil
}

// GetIdentityProof constructs the IdentityProof this resolved identity
// request attests, signed with signature. Returns an error if this is not
// an identity request.
func (rr *ResolvedRequest) GetIdentityProof(signature abival.Signature) (proof.IdentityProof, error) {
	if !rr.request.IsIdentity() {
		return proof.IdentityProof{}, newError(InvalidDescriptor, "GetIdentityProof requires an identity request")
	}
	return proof.New(rr.result.ChainID, rr.request.GetIdentityScope(), rr.result.Transaction.Expiration, rr.result.Signer, signature), nil
}

// CallbackPayload is the read-only projection FromPayload reconstructs
// from a received callback dictionary. The original transaction body is
// not present in a callback payload, so only the fields the callback
// template can carry are recoverable.
type CallbackPayload struct {
	TransactionID    string // hex, from the "tx" key
	RefBlockNum      uint16
	RefBlockPrefix   uint32
	Expiration       uint32
	SignerActor      abival.Name
	SignerPermission abival.Name
	ChainID          chain.ID
	Signatures       []abival.Signature
}

// FromPayload reconstructs a CallbackPayload from the dictionary a wallet
// posted back to a background callback endpoint. dict's keys and value
// encodings: "sig"/"sigN" are SIG_<curve>_... text signatures, "rbn"/
// "rid"/"ex" are decimal strings, "sa"/"sp" are base-32 names, "cid" is
// hex.
func FromPayload(dict map[string]string) (CallbackPayload, error) {
	var p CallbackPayload
	p.TransactionID = dict["tx"]

	if v, ok := dict["rbn"]; ok {
		n, err := parseUint(v, 16)
		if err != nil {
			return CallbackPayload{}, wrapError(DecodeErrorKind, "parsing rbn", err)
		}
		p.RefBlockNum = uint16(n)
	}
	if v, ok := dict["rid"]; ok {
		n, err := parseUint(v, 32)
		if err != nil {
			return CallbackPayload{}, wrapError(DecodeErrorKind, "parsing rid", err)
		}
		p.RefBlockPrefix = uint32(n)
	}
	if v, ok := dict["ex"]; ok {
		n, err := parseUint(v, 32)
		if err != nil {
			return CallbackPayload{}, wrapError(DecodeErrorKind, "parsing ex", err)
		}
		p.Expiration = uint32(n)
	}
	if v, ok := dict["sa"]; ok {
		p.SignerActor = abival.NameFromString(v)
	}
	if v, ok := dict["sp"]; ok {
		p.SignerPermission = abival.NameFromString(v)
	}
	if v, ok := dict["cid"]; ok {
		id, err := chain.IDFromHex(v)
		if err != nil {
			return CallbackPayload{}, wrapError(DecodeErrorKind, "parsing cid", err)
		}
		p.ChainID = id
	}

	if v, ok := dict["sig"]; ok {
		sig, err := eosname.ParseSignature(v)
		if err != nil {
			return CallbackPayload{}, wrapError(DecodeErrorKind, "parsing sig", err)
		}
		p.Signatures = append(p.Signatures, sig)
	}
	for i := 0; ; i++ {
		key := "sig" + strconv.Itoa(i)
		v, ok := dict[key]
		if !ok {
			break
		}
		sig, err := eosname.ParseSignature(v)
		if err != nil {
			return CallbackPayload{}, wrapError(DecodeErrorKind, "parsing "+key, err)
		}
		p.Signatures = append(p.Signatures, sig)
	}

	return p, nil
}

func parseUint(s string, bits int) (uint64, error) {
	return strconv.ParseUint(s, 10, bits)
}
