package esr

import (
	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

// SetCallback replaces the request's callback URL and background flag.
func (r *Request) SetCallback(url string, background bool) {
	r.callback = url
	if background {
		r.flags |= wire.FlagBackground
	} else {
		r.flags &^= wire.FlagBackground
	}
}

// SetBroadcast replaces the request's broadcast flag. It refuses to set it
// true on an identity request.
func (r *Request) SetBroadcast(broadcast bool) error {
	if r.IsIdentity() && broadcast {
		return errIdentityBroadcast()
	}
	if broadcast {
		r.flags |= wire.FlagBroadcast
	} else {
		r.flags &^= wire.FlagBroadcast
	}
	return nil
}

// SetRawInfoKey sets an info pair's value as raw bytes, overwriting any
// existing entry for key.
func (r *Request) SetRawInfoKey(key string, value []byte) {
	r.info = r.info.Set(key, value)
}

// SetInfoKey sets an info pair's value from a UTF-8 string, the same
// "raw UTF-8, no length prefix" convention GetInfoKey reads back.
func (r *Request) SetInfoKey(key string, value string) {
	r.SetRawInfoKey(key, []byte(value))
}

// SetSignature attaches (or replaces) the originator signature, bypassing
// a SignatureProvider call — used when a signature was produced out of
// band, e.g. recovered from a callback payload.
func (r *Request) SetSignature(signer abival.Name, sig abival.Signature) {
	r.signer = signer
	r.signature = &sig
}

// SetChainIds replaces the declared chain_ids info pair of a multi-chain
// request. It is a no-op (returns an error) on a single-chain request.
func (r *Request) SetChainIds(ids []chain.ID) error {
	if !r.IsMultiChain() {
		return newError(BadChain, "SetChainIds requires a multi-chain request")
	}
	r.declaredIDs = append([]chain.ID(nil), ids...)
	if len(r.declaredIDs) == 0 {
		r.info = r.info.Set(infoKeyChainIDs, nil)
		return nil
	}
	r.info = r.info.Set(infoKeyChainIDs, encodeChainIDs(r.declaredIDs))
	return nil
}
