package esr

import (
	"errors"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/codec"
	"github.com/yourusername/signingrequest/src/esr/resolve"
)

// Context is the caller-supplied TAPoS/chain-selection material resolution
// needs beyond the request's own fields.
type Context = resolve.Context

// FetchAbis fetches the ABI for every account GetRequiredAbis names, using
// provider, and returns the resulting map keyed by account.
func (r *Request) FetchAbis(provider AbiProvider) (map[abival.Name]codec.ABI, error) {
	out := make(map[abival.Name]codec.ABI)
	for _, account := range r.GetRequiredAbis() {
		abi, err := provider.GetAbi(account)
		if err != nil {
			return nil, wrapError(MissingAbi, "fetching abi for "+account.String(), err)
		}
		out[account] = abi
	}
	return out, nil
}

// ResolveActions decodes and placeholder-substitutes r's actions against
// signer, filling TAPoS from ctx along the way (a lighter-weight sibling
// of Resolve for callers that only need the decoded action data).
func (r *Request) ResolveActions(abis map[abival.Name]codec.ABI, signer abival.PermissionLevel, ctx Context) ([]abival.Action, error) {
	res, err := resolve.Resolve(r.toResolveInput(), abis, signer, ctx, codec.Default)
	if err != nil {
		return nil, translateResolveErr(err)
	}
	return res.ResolvedTransaction.Actions, nil
}

// ResolveTransaction runs full resolution and returns the concrete,
// signable transaction plus the chain id it resolved against.
func (r *Request) ResolveTransaction(abis map[abival.Name]codec.ABI, signer abival.PermissionLevel, ctx Context) (*ResolvedRequest, error) {
	res, err := resolve.Resolve(r.toResolveInput(), abis, signer, ctx, codec.Default)
	if err != nil {
		return nil, translateResolveErr(err)
	}
	return &ResolvedRequest{request: r, result: res}, nil
}

// Resolve is a convenience wrapper that fetches ABIs via provider before
// resolving.
func (r *Request) Resolve(provider AbiProvider, signer abival.PermissionLevel, ctx Context) (*ResolvedRequest, error) {
	abis, err := r.FetchAbis(provider)
	if err != nil {
		return nil, err
	}
	return r.ResolveTransaction(abis, signer, ctx)
}

func translateResolveErr(err error) error {
	switch {
	case errors.Is(err, resolve.ErrMissingTaPoS):
		return newError(MissingTaPoS, "transaction header is null and no TAPoS material was supplied")
	case errors.Is(err, resolve.ErrUnknownAction):
		return wrapError(UnknownAction, "resolving action", err)
	case errors.Is(err, resolve.ErrBadChain):
		return newError(BadChain, "chain id could not be determined")
	default:
		return err
	}
}
