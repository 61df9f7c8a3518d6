// Package abiprovider is an in-memory esr.AbiProvider reference
// implementation: a sync.RWMutex-guarded map from account name to ABI,
// with an optional fallback provider consulted (and cached) on miss.
package abiprovider

import (
	"sync"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/codec"
)

// Store is a thread-safe, in-memory ABI cache. It satisfies esr.AbiProvider
// directly, and can also wrap another esr.AbiProvider so repeated lookups
// for the same account only hit the wrapped provider once.
type Store struct {
	mu       sync.RWMutex
	abis     map[abival.Name]codec.ABI
	fallback Fallback
}

// Fallback is consulted on a cache miss. It is the same shape as
// esr.AbiProvider but declared independently so this package does not
// import the root esr module (avoiding a dependency cycle: esr wires this
// package in, not the reverse).
type Fallback interface {
	GetAbi(account abival.Name) (codec.ABI, error)
}

// FallbackFunc adapts a plain function to a Fallback.
type FallbackFunc func(account abival.Name) (codec.ABI, error)

func (f FallbackFunc) GetAbi(account abival.Name) (codec.ABI, error) { return f(account) }

// New returns an empty Store with no fallback.
func New() *Store {
	return &Store{abis: make(map[abival.Name]codec.ABI)}
}

// NewWithFallback returns a Store that consults fallback on a cache miss
// and caches whatever it returns.
func NewWithFallback(fallback Fallback) *Store {
	return &Store{abis: make(map[abival.Name]codec.ABI), fallback: fallback}
}

// Set stores abi for account, overwriting any cached value.
func (s *Store) Set(account abival.Name, abi codec.ABI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abis[account] = abi
}

// Get returns the cached ABI for account, if any, without consulting the
// fallback.
func (s *Store) Get(account abival.Name) (codec.ABI, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	abi, ok := s.abis[account]
	return abi, ok
}

// GetAbi implements esr.AbiProvider: a cache hit returns immediately;
// a miss consults the fallback (if any) and caches the result.
func (s *Store) GetAbi(account abival.Name) (codec.ABI, error) {
	if abi, ok := s.Get(account); ok {
		return abi, nil
	}
	if s.fallback == nil {
		return codec.ABI{}, &MissingError{Account: account}
	}
	abi, err := s.fallback.GetAbi(account)
	if err != nil {
		return codec.ABI{}, err
	}
	s.Set(account, abi)
	return abi, nil
}

// MissingError is returned when no fallback is configured and the account
// has no cached ABI.
type MissingError struct {
	Account abival.Name
}

func (e *MissingError) Error() string {
	return "abiprovider: no abi cached or fetchable for account " + e.Account.String()
}

// Accounts returns every account currently cached.
func (s *Store) Accounts() []abival.Name {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]abival.Name, 0, len(s.abis))
	for a := range s.abis {
		out = append(out, a)
	}
	return out
}
