// Package resolve implements the resolution algorithm that turns a partial
// request (placeholders, a null block-reference header, multi-chain
// indeterminacy) into a concrete, signable transaction.
package resolve

import (
	"errors"
	"time"

	"github.com/yourusername/signingrequest/src/esr/chain"
)

// Context is the TAPoS / chain-selection context supplied to Resolve.
// ExpireSeconds is a pointer so an explicit 0 can be distinguished from
// "not given" (which defaults to 60).
type Context struct {
	Expiration     *uint32
	RefBlockNum    *uint16
	RefBlockPrefix *uint32
	Timestamp      *time.Time
	BlockNum       *uint32
	ExpireSeconds  *uint32
	ChainID        *chain.ID
}

const defaultExpireSeconds = 60

func (c Context) expireSeconds() uint32 {
	if c.ExpireSeconds == nil {
		return defaultExpireSeconds
	}
	return *c.ExpireSeconds
}

// hasDirectTapos reports whether the context supplies expiration,
// ref_block_num, and ref_block_prefix directly.
func (c Context) hasDirectTapos() bool {
	return c.Expiration != nil && c.RefBlockNum != nil && c.RefBlockPrefix != nil
}

// hasDerivedTapos reports whether the context supplies block_num,
// ref_block_prefix, and timestamp, from which TAPoS fields are derived.
func (c Context) hasDerivedTapos() bool {
	return c.BlockNum != nil && c.RefBlockPrefix != nil && c.Timestamp != nil
}

// ErrMissingTaPoS is returned when the context cannot fill a null header.
var ErrMissingTaPoS = errors.New("resolve: context insufficient to fill null transaction header")

// ErrUnknownAction is returned when an action name is absent from its ABI.
var ErrUnknownAction = errors.New("resolve: action name absent from its abi")

// ErrBadChain is returned when a multi-chain request has no chosen chain,
// or the chosen chain is outside the declared set.
var ErrBadChain = errors.New("resolve: no chain chosen, or chosen chain not declared")
