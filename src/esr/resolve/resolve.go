package resolve

import (
	"fmt"
	"time"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/codec"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

// Input bundles everything Resolve needs from the originating request that
// isn't part of the signer/context/abi arguments, so this package stays
// independent of the top-level request type (it is wired in from there).
type Input struct {
	Version          wire.Version
	Kind             wire.RequestKind
	Action           abival.Action
	Actions          []abival.Action
	Transaction      abival.Transaction
	Identity         wire.IdentityBody
	ChainVariant     chain.Variant
	DeclaredChainIDs []chain.ID
}

// Result is the concrete, signable outcome of resolution.
type Result struct {
	Signer              abival.PermissionLevel
	Transaction         abival.Transaction // encoded/signable: Decoded left nil
	ResolvedTransaction abival.Transaction // decoded form: Decoded populated
	ChainID             chain.ID
}

// RequiredAccounts returns the distinct accounts whose ABI must be known to
// resolve in, excluding the built-in identity action.
func RequiredAccounts(in Input) []abival.Name {
	seen := map[abival.Name]bool{}
	var out []abival.Name
	add := func(a abival.Action) {
		if a.Account == codec.ZeroAccount && a.Name == codec.IdentityActionName {
			return
		}
		if !seen[a.Account] {
			seen[a.Account] = true
			out = append(out, a.Account)
		}
	}
	switch in.Kind {
	case wire.KindAction:
		add(in.Action)
	case wire.KindActions:
		for _, a := range in.Actions {
			add(a)
		}
	case wire.KindTransaction:
		for _, a := range in.Transaction.Actions {
			add(a)
		}
	}
	return out
}

// RequiresTapos reports whether a request of this kind has a null header
// filled from TAPoS material during resolution: true for any non-identity
// kind, since identity requests manage their own expiration instead. It
// looks at the kind only; fillTapos leaves an already-concrete header as is.
func RequiresTapos(kind wire.RequestKind) bool {
	return kind != wire.KindIdentity
}

// buildRawTransaction assembles the unresolved transaction shape for in's
// kind, synthesizing the built-in identity action when the request is an
// identity request.
func buildRawTransaction(in Input, signer abival.PermissionLevel) abival.Transaction {
	switch in.Kind {
	case wire.KindAction:
		return abival.Transaction{Actions: []abival.Action{in.Action}}
	case wire.KindActions:
		return abival.Transaction{Actions: append([]abival.Action(nil), in.Actions...)}
	case wire.KindTransaction:
		return in.Transaction.Clone()
	case wire.KindIdentity:
		auth := signer
		data := codec.EncodeIdentityData(codec.IdentityBodyValue(in.Identity, in.Version), in.Version)
		action := abival.Action{
			Account:       codec.ZeroAccount,
			Name:          codec.IdentityActionName,
			Authorization: []abival.PermissionLevel{auth},
			Data:          data,
		}
		return abival.Transaction{Actions: []abival.Action{action}}
	default:
		return abival.Transaction{}
	}
}

// fillTapos fills a null transaction header from whichever TAPoS shape the
// context supplies, direct or derived, leaving an already-concrete header
// untouched.
func fillTapos(h abival.Header, ctx Context) (abival.Header, error) {
	if !h.IsNull() {
		return h, nil
	}
	if ctx.hasDirectTapos() {
		h.Expiration = *ctx.Expiration
		h.RefBlockNum = *ctx.RefBlockNum
		h.RefBlockPrefix = *ctx.RefBlockPrefix
		return h, nil
	}
	if ctx.hasDerivedTapos() {
		h.Expiration = uint32(ctx.Timestamp.Unix()) + ctx.expireSeconds()
		h.RefBlockNum = uint16(*ctx.BlockNum)
		h.RefBlockPrefix = *ctx.RefBlockPrefix
		return h, nil
	}
	return h, ErrMissingTaPoS
}

// abiFor locates the ABI governing an action: the built-in identity ABI for
// the zero-account "identity" action (handled by the caller directly, not
// via this lookup), otherwise the supplied account ABI map.
func abiFor(abis map[abival.Name]codec.ABI, account abival.Name) (codec.ABI, bool) {
	a, ok := abis[account]
	return a, ok
}

// decodeAndSubstitute decodes one action's data against its ABI, substitutes
// placeholder actor/permission values throughout the decoded tree and its
// authorization list, and re-encodes the result.
func decodeAndSubstitute(a abival.Action, version wire.Version, abis map[abival.Name]codec.ABI, actionCodec codec.ActionCodec, signer abival.PermissionLevel) (abival.Action, error) {
	out := a
	out.Authorization = make([]abival.PermissionLevel, len(a.Authorization))
	for i, auth := range a.Authorization {
		out.Authorization[i] = auth.Substitute(signer)
	}

	var decoded abival.Value
	var err error
	builtin := a.Account == codec.ZeroAccount && a.Name == codec.IdentityActionName
	if builtin {
		decoded, err = codec.DecodeIdentityData(a.Data, version)
	} else {
		abi, ok := abiFor(abis, a.Account)
		if !ok {
			return abival.Action{}, fmt.Errorf("resolve: no abi for account %s: %w", a.Account, ErrUnknownAction)
		}
		if _, ok := abi.Actions[a.Name]; !ok {
			return abival.Action{}, fmt.Errorf("resolve: action %s: %w", a.Name, ErrUnknownAction)
		}
		decoded, err = actionCodec.DecodeActionData(abi, a.Name, a.Data)
	}
	if err != nil {
		return abival.Action{}, err
	}

	substituted := abival.SubstitutePlaceholders(decoded, signer.Actor, signer.Permission)
	out.Decoded = &substituted

	var reencoded []byte
	if builtin {
		reencoded = codec.EncodeIdentityData(substituted, version)
	} else {
		abi, _ := abiFor(abis, a.Account)
		reencoded, err = actionCodec.EncodeActionData(abi, a.Name, substituted)
		if err != nil {
			return abival.Action{}, err
		}
	}
	out.Data = reencoded
	return out, nil
}

// chooseChainID resolves a single chain id from either the request's fixed
// chain variant or, for a multi-chain request, the context's chosen chain
// validated against the declared set.
func chooseChainID(in Input, ctx Context) (chain.ID, error) {
	if !in.ChainVariant.IsMultiChain() {
		return in.ChainVariant.Resolve()
	}
	if ctx.ChainID == nil {
		return chain.ID{}, ErrBadChain
	}
	if len(in.DeclaredChainIDs) > 0 {
		for _, id := range in.DeclaredChainIDs {
			if id == *ctx.ChainID {
				return *ctx.ChainID, nil
			}
		}
		return chain.ID{}, ErrBadChain
	}
	return *ctx.ChainID, nil
}

// Resolve turns a request's raw contents into a signable transaction: it
// fills any null TAPoS header, substitutes placeholders throughout every
// action, and settles on a single chain id.
func Resolve(in Input, abis map[abival.Name]codec.ABI, signer abival.PermissionLevel, ctx Context, actionCodec codec.ActionCodec) (Result, error) {
	tx := buildRawTransaction(in, signer)

	isIdentity := in.Kind == wire.KindIdentity
	if !isIdentity {
		h, err := fillTapos(tx.Header, ctx)
		if err != nil {
			return Result{}, err
		}
		tx.Header = h
	} else if in.Version >= wire.V3 {
		if ctx.hasDirectTapos() || ctx.hasDerivedTapos() {
			h, err := fillTapos(abival.Header{}, ctx)
			if err != nil {
				return Result{}, err
			}
			tx.Header.Expiration = h.Expiration
		} else {
			tx.Header.Expiration = uint32(time.Now().Unix()) + ctx.expireSeconds()
		}
	}

	resolved := tx.Clone()
	signable := tx.Clone()
	for i, a := range tx.Actions {
		out, err := decodeAndSubstitute(a, in.Version, abis, actionCodec, signer)
		if err != nil {
			return Result{}, err
		}
		resolved.Actions[i] = out
		signableAction := out
		signableAction.Decoded = nil
		signable.Actions[i] = signableAction
	}

	chainID, err := chooseChainID(in, ctx)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Signer:              signer,
		Transaction:         signable,
		ResolvedTransaction: resolved,
		ChainID:             chainID,
	}, nil
}
