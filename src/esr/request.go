// Package esr is the root package of the signing-request protocol: the
// Request type (builder, mutation, query, resolution, signing, and
// serialization) plus the collaborator interfaces it consumes.
package esr

import (
	"fmt"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/codec"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

// Request is a signing request: created by a builder or by decoding, and
// immutable in its structural parts except for info pairs, callback URL,
// flag byte, and originator signature, which may be mutated in place.
type Request struct {
	version      wire.Version
	kind         wire.RequestKind
	action       abival.Action
	actions      []abival.Action
	transaction  abival.Transaction
	identity     wire.IdentityBody
	chainVariant chain.Variant
	declaredIDs  []chain.ID // non-nil only for a multi-chain request
	flags        byte
	callback     string
	info         abival.InfoList
	signer       abival.Name
	signature    *abival.Signature
}

// IdentityDescriptor carries the optional scope/permission restriction of
// an identity request.
type IdentityDescriptor struct {
	Scope      *abival.Name
	Permission *abival.PermissionLevel
}

// Descriptor is the builder's input: exactly one of Action / Actions /
// Transaction / Identity must be set.
type Descriptor struct {
	Action      *abival.Action
	Actions     []abival.Action
	Transaction *abival.Transaction
	Identity    *IdentityDescriptor

	// ChainID selects a single chain. MultiChain, if true, forces a
	// null/alias-0 chain id (v3) regardless of ChainID.
	ChainID    *chain.ID
	MultiChain bool
	ChainIDs   []chain.ID // only consulted when MultiChain

	// Broadcast is nil for "use the default" (true for non-identity,
	// false for identity; identity always ends up false regardless).
	Broadcast *bool

	CallbackURL        string
	CallbackBackground bool

	Info map[string][]byte
}

// Options configures a builder call.
type Options struct {
	AbiProvider       AbiProvider
	SignatureProvider SignatureProvider
}

const infoKeyChainIDs = "chain_ids"

// errInvalidDescriptor builds the error returned when a Descriptor names
// zero or more than one of Action/Actions/Transaction/Identity.
func errInvalidDescriptor(reason string) error {
	return newError(InvalidDescriptor, "descriptor must name exactly one of action/actions/transaction/identity: "+reason)
}

// errIdentityBroadcast builds the error returned when an identity request
// is built (or decoded) with broadcast set.
func errIdentityBroadcast() error {
	return newError(IdentityBroadcast, "identity requests cannot be broadcast")
}

func descriptorKind(d Descriptor) (wire.RequestKind, error) {
	count := 0
	var kind wire.RequestKind
	if d.Action != nil {
		count++
		kind = wire.KindAction
	}
	if d.Actions != nil {
		count++
		kind = wire.KindActions
	}
	if d.Transaction != nil {
		count++
		kind = wire.KindTransaction
	}
	if d.Identity != nil {
		count++
		kind = wire.KindIdentity
	}
	if count != 1 {
		return 0, errInvalidDescriptor(fmt.Sprintf("got %d of them", count))
	}
	return kind, nil
}

// selectVersion picks the wire protocol version: v2 by default; v3 if an
// identity descriptor uses Scope, or if the chain id is explicitly null
// (multi-chain).
func selectVersion(d Descriptor, kind wire.RequestKind) wire.Version {
	if d.MultiChain {
		return wire.V3
	}
	if kind == wire.KindIdentity && d.Identity != nil && d.Identity.Scope != nil {
		return wire.V3
	}
	return wire.V2
}

// CreateSync builds a Request from descriptor given an already-fetched ABI
// map; it never calls out to an AbiProvider.
func CreateSync(d Descriptor, opts Options, abis map[abival.Name]codec.ABI) (*Request, error) {
	kind, err := descriptorKind(d)
	if err != nil {
		return nil, err
	}
	version := selectVersion(d, kind)

	broadcast := kind != wire.KindIdentity
	if d.Broadcast != nil {
		broadcast = *d.Broadcast
	}
	if kind == wire.KindIdentity {
		if d.Broadcast != nil && *d.Broadcast {
			return nil, errIdentityBroadcast()
		}
		broadcast = false
	}

	r := &Request{version: version}
	r.kind = kind

	switch kind {
	case wire.KindAction:
		encoded, err := encodeAction(*d.Action, abis, opts.AbiProvider)
		if err != nil {
			return nil, err
		}
		r.action = encoded
	case wire.KindActions:
		r.actions = make([]abival.Action, len(d.Actions))
		for i, a := range d.Actions {
			encoded, err := encodeAction(a, abis, opts.AbiProvider)
			if err != nil {
				return nil, err
			}
			r.actions[i] = encoded
		}
	case wire.KindTransaction:
		tx := d.Transaction.Clone()
		for i, a := range tx.Actions {
			encoded, err := encodeAction(a, abis, opts.AbiProvider)
			if err != nil {
				return nil, err
			}
			tx.Actions[i] = encoded
		}
		r.transaction = tx
	case wire.KindIdentity:
		if d.Identity.Scope != nil {
			r.identity.Scope = *d.Identity.Scope
		}
		r.identity.Permission = d.Identity.Permission
	}

	if d.MultiChain {
		r.chainVariant = chain.Variant{IsAlias: true, Alias: chain.Unknown}
		r.declaredIDs = d.ChainIDs
	} else if d.ChainID != nil {
		r.chainVariant = chain.FromID(*d.ChainID)
	} else {
		r.chainVariant = chain.Variant{IsAlias: true, Alias: chain.Unknown}
	}

	if broadcast {
		r.flags |= wire.FlagBroadcast
	}
	if d.CallbackBackground {
		r.flags |= wire.FlagBackground
	}
	r.callback = d.CallbackURL

	r.info = abival.InfoList{}
	for k, v := range d.Info {
		r.info = r.info.Set(k, v)
	}
	if len(r.declaredIDs) > 0 {
		r.info = r.info.Set(infoKeyChainIDs, encodeChainIDs(r.declaredIDs))
	}

	if opts.SignatureProvider != nil {
		if err := r.Sign(opts.SignatureProvider); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Create builds a Request, fetching any ABIs it needs from
// opts.AbiProvider. The provider call blocks; there is no async variant.
func Create(d Descriptor, opts Options) (*Request, error) {
	return CreateSync(d, opts, nil)
}

// Identity builds an identity request.
func Identity(d IdentityDescriptor, opts Options) (*Request, error) {
	return CreateSync(Descriptor{Identity: &d}, opts, nil)
}

func encodeAction(a abival.Action, abis map[abival.Name]codec.ABI, provider AbiProvider) (abival.Action, error) {
	if a.Data != nil {
		return a, nil
	}
	if a.Decoded == nil {
		return a, nil
	}
	abi, ok := abis[a.Account]
	if !ok {
		if provider == nil {
			return abival.Action{}, newError(MissingAbiProvider, fmt.Sprintf("no abi for account %s and no provider given", a.Account))
		}
		fetched, err := provider.GetAbi(a.Account)
		if err != nil {
			return abival.Action{}, wrapError(MissingAbi, fmt.Sprintf("fetching abi for %s", a.Account), err)
		}
		abi = fetched
	}
	data, err := codec.Default.EncodeActionData(abi, a.Name, *a.Decoded)
	if err != nil {
		return abival.Action{}, wrapError(DecodeErrorKind, "encoding action data", err)
	}
	out := a
	out.Data = data
	return out, nil
}

func encodeChainIDs(ids []chain.ID) []byte {
	w := wire.NewWriter()
	w.WriteVaruint32(uint32(len(ids)))
	for _, id := range ids {
		v := chain.FromID(id)
		wire.WriteChainVariant(w, v)
	}
	return w.Bytes()
}

func decodeChainIDs(data []byte) ([]chain.ID, error) {
	r := wire.NewReader(data)
	n, err := r.ReadVaruint32()
	if err != nil {
		return nil, err
	}
	out := make([]chain.ID, n)
	for i := range out {
		v, err := wire.ReadChainVariant(r)
		if err != nil {
			return nil, err
		}
		id, err := v.Resolve()
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
