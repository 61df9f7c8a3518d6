package abiprovider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/codec"
)

func TestGetAbiCacheHit(t *testing.T) {
	store := New()
	account := abival.NameFromString("eosio.token")
	abi := codec.NewABI(map[abival.Name]codec.ActionType{
		abival.NameFromString("transfer"): {Fields: []codec.Field{{Name: "from", Type: codec.TypeName}}},
	})
	store.Set(account, abi)

	got, err := store.GetAbi(account)
	require.NoError(t, err)
	assert.Equal(t, abi, got)
}

func TestGetAbiMissWithNoFallback(t *testing.T) {
	store := New()
	_, err := store.GetAbi(abival.NameFromString("eosio.token"))
	require.Error(t, err)
	var missing *MissingError
	assert.ErrorAs(t, err, &missing)
}

func TestGetAbiFallbackIsCachedAfterFirstMiss(t *testing.T) {
	account := abival.NameFromString("eosio.token")
	abi := codec.NewABI(map[abival.Name]codec.ActionType{})
	calls := 0
	store := NewWithFallback(FallbackFunc(func(a abival.Name) (codec.ABI, error) {
		calls++
		return abi, nil
	}))

	first, err := store.GetAbi(account)
	require.NoError(t, err)
	assert.Equal(t, abi, first)

	second, err := store.GetAbi(account)
	require.NoError(t, err)
	assert.Equal(t, abi, second)
	assert.Equal(t, 1, calls, "fallback should only be consulted once")
}

func TestAccountsListsCachedEntries(t *testing.T) {
	store := New()
	store.Set(abival.NameFromString("eosio.token"), codec.ABI{})
	store.Set(abival.NameFromString("eosio"), codec.ABI{})
	assert.Len(t, store.Accounts(), 2)
}
