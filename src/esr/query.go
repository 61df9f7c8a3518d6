package esr

import (
	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/codec"
	"github.com/yourusername/signingrequest/src/esr/resolve"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

// IsIdentity reports whether r is an identity request.
func (r *Request) IsIdentity() bool { return r.kind == wire.KindIdentity }

// IsMultiChain reports whether r carries the alias-0 "any chain" marker.
func (r *Request) IsMultiChain() bool { return r.chainVariant.IsMultiChain() }

// ShouldBroadcast reports the broadcast flag. Always false for identity
// requests.
func (r *Request) ShouldBroadcast() bool { return r.flags&wire.FlagBroadcast != 0 }

// GetChainId returns the single chain id r designates, or an error if r is
// multi-chain.
func (r *Request) GetChainId() (chain.ID, error) {
	if r.IsMultiChain() {
		return chain.ID{}, newError(BadChain, "request is multi-chain; use GetChainIds")
	}
	return r.chainVariant.Resolve()
}

// GetChainIds returns the declared chain_ids set for a multi-chain
// request, or nil if none was declared.
func (r *Request) GetChainIds() []chain.ID {
	return append([]chain.ID(nil), r.declaredIDs...)
}

// GetIdentity returns the identity body, if this is an identity request.
func (r *Request) GetIdentity() (wire.IdentityBody, bool) {
	if !r.IsIdentity() {
		return wire.IdentityBody{}, false
	}
	return r.identity, true
}

// GetIdentityPermission returns the identity request's restricted
// permission, if any was set.
func (r *Request) GetIdentityPermission() *abival.PermissionLevel {
	if !r.IsIdentity() {
		return nil
	}
	return r.identity.Permission
}

// GetIdentityScope returns the identity request's scope (zero Name if
// unset or not v3).
func (r *Request) GetIdentityScope() abival.Name {
	if !r.IsIdentity() {
		return 0
	}
	return r.identity.Scope
}

// GetRawActions returns the request's actions with data left encoded,
// regardless of whether it was built from a single action, an action
// list, or a transaction.
func (r *Request) GetRawActions() []abival.Action {
	switch r.kind {
	case wire.KindAction:
		return []abival.Action{r.action}
	case wire.KindActions:
		return append([]abival.Action(nil), r.actions...)
	case wire.KindTransaction:
		return append([]abival.Action(nil), r.transaction.Actions...)
	case wire.KindIdentity:
		data := codec.EncodeIdentityData(codec.IdentityBodyValue(r.identity, r.version), r.version)
		auth := abival.PlaceholderAuth
		return []abival.Action{{Account: codec.ZeroAccount, Name: codec.IdentityActionName, Authorization: []abival.PermissionLevel{auth}, Data: data}}
	default:
		return nil
	}
}

// GetRawTransaction returns the null-or-concrete header transaction r
// carries.
func (r *Request) GetRawTransaction() abival.Transaction {
	if r.kind == wire.KindTransaction {
		return r.transaction.Clone()
	}
	return abival.Transaction{Actions: r.GetRawActions()}
}

// GetRequiredAbis returns the distinct accounts (excluding the built-in
// identity action) whose ABI must be known to resolve r.
func (r *Request) GetRequiredAbis() []abival.Name {
	return resolve.RequiredAccounts(r.toResolveInput())
}

// RequiresTapos reports whether resolving r will need to fill a null
// header.
func (r *Request) RequiresTapos() bool {
	return resolve.RequiresTapos(r.kind) && r.GetRawTransaction().Header.IsNull()
}

// GetRawInfo returns the request's info pairs, undecoded.
func (r *Request) GetRawInfo() abival.InfoList { return r.info.Clone() }

// GetInfo decodes the info pairs as a plain map of key to raw bytes
// (convenience over GetRawInfo).
func (r *Request) GetInfo() map[string][]byte {
	out := make(map[string][]byte, len(r.info))
	for _, p := range r.info {
		out[p.Key] = p.Value
	}
	return out
}

// GetRawInfoKey returns the raw bytes of an info key.
func (r *Request) GetRawInfoKey(key string) ([]byte, bool) { return r.info.Get(key) }

// GetInfoKey returns an info value decoded as a UTF-8 string, matching the
// "raw UTF-8, no length prefix" convention for string-typed info values.
func (r *Request) GetInfoKey(key string) (string, bool) {
	v, ok := r.info.Get(key)
	if !ok {
		return "", false
	}
	return string(v), true
}

func (r *Request) toResolveInput() resolve.Input {
	return resolve.Input{
		Version:          r.version,
		Kind:             r.kind,
		Action:           r.action,
		Actions:          r.actions,
		Transaction:      r.transaction,
		Identity:         r.identity,
		ChainVariant:     r.chainVariant,
		DeclaredChainIDs: r.declaredIDs,
	}
}
