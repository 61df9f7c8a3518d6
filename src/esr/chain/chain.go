// Package chain implements the ChainId tagged union (alias or raw 32-byte
// id) and the built-in alias table, using a compile-time table since the
// alias set is fixed by the wire format rather than user-extensible.
package chain

import (
	"encoding/hex"
	"fmt"
)

// Alias is the compact one-byte chain identifier.
type Alias uint8

const (
	Unknown  Alias = 0
	EOS      Alias = 1
	Telos    Alias = 2
	Jungle   Alias = 3
	Kylin    Alias = 4
	Worbli   Alias = 5
	Bos      Alias = 6
	Meetone  Alias = 7
	Insights Alias = 8
	Beos     Alias = 9
	Wax      Alias = 10
	Proton   Alias = 11
	Fio      Alias = 12
)

// ID is a 32-byte chain identifier.
type ID [32]byte

type aliasRow struct {
	alias Alias
	name  string
	hex   string
}

var table = []aliasRow{
	{EOS, "EOS", "aca376f206b8fc25a6ed44dbdc66547c36c6c33e3a119ffbeaef943642f0e906"},
	{Telos, "TELOS", "4667b205c6838ef70ff7988f6e8257e8be0e1284a2f59699054a018f743b1d11"},
	{Jungle, "JUNGLE", "e70aaab8997e1dfce58fbfac80cbbb8fecec7b99cf982a9444273cbc64c41473"},
	{Kylin, "KYLIN", "5fff1dae8dc8e2fc4d5b23b2c7665c97f9e9d8edf2b6485a86ba311c25639191"},
	{Worbli, "WORBLI", "73647cde120091e0a4b85bced2f3cfdb3041e266cbbe95cee59b73235a1b3b6f"},
	{Bos, "BOS", "d5a3d18fbb3c084e3b1f3fa98c21014b5f3db536cc15d08f9f6479517c6a3d86"},
	{Meetone, "MEETONE", "cfe6486a83bad4962f232d48003b1824ab5665c36778141034d75e57b956e422"},
	{Insights, "INSIGHTS", "b042025541e25a472bffde2d62edd457b7e70cee943412b1ea0f044f88591664"},
	{Beos, "BEOS", "b912d19a6abd2b1b05611ae5be473355d64d95aeff0c09bedc8c166cd6468fe4"},
	{Wax, "WAX", "1064487b3cd1a897ce03ae5b6a865651747e2e152090f99c1d19d44e01aea5a4"},
	{Proton, "PROTON", "384da888112027f0321850a169f737c33e53b388aad48b5adace4bab97f437e0"},
	{Fio, "FIO", "21dcae42c0182200e93f954a074011f9048a7624c6fe81d3c9541a614a88bd1c"},
}

var (
	byAlias = map[Alias]ID{}
	byID    = map[ID]Alias{}
	names   = map[Alias]string{Unknown: "UNKNOWN"}
)

func init() {
	for _, row := range table {
		var id ID
		raw, err := hex.DecodeString(row.hex)
		if err != nil || len(raw) != 32 {
			panic(fmt.Sprintf("chain: malformed built-in alias table entry %q", row.name))
		}
		copy(id[:], raw)
		byAlias[row.alias] = id
		byID[id] = row.alias
		names[row.alias] = row.name
	}
}

// mustID panics if a is absent from the built-in table; only used by the
// package-level convenience constructors below, whose aliases are all
// compile-time constants from the same table.
func mustID(a Alias) ID {
	id, err := IDForAlias(a)
	if err != nil {
		panic(err)
	}
	return id
}

// EOSID, TelosID, JungleID, KylinID, WorbliID, BosID, MeetoneID,
// InsightsID, BeosID, WaxID, ProtonID, and FioID are convenience
// constructors returning each built-in alias table row's raw id directly.
func EOSID() ID      { return mustID(EOS) }
func TelosID() ID    { return mustID(Telos) }
func JungleID() ID   { return mustID(Jungle) }
func KylinID() ID    { return mustID(Kylin) }
func WorbliID() ID   { return mustID(Worbli) }
func BosID() ID      { return mustID(Bos) }
func MeetoneID() ID  { return mustID(Meetone) }
func InsightsID() ID { return mustID(Insights) }
func BeosID() ID     { return mustID(Beos) }
func WaxID() ID      { return mustID(Wax) }
func ProtonID() ID   { return mustID(Proton) }
func FioID() ID      { return mustID(Fio) }

// UnknownAliasError is returned when an alias outside the built-in table is
// requested.
type UnknownAliasError struct {
	Alias Alias
}

func (e *UnknownAliasError) Error() string {
	return fmt.Sprintf("chain: unknown alias %d", e.Alias)
}

// IDForAlias returns the 32-byte chain id for a known alias. Alias 0
// (Unknown) has no id and is rejected.
func IDForAlias(a Alias) (ID, error) {
	id, ok := byAlias[a]
	if !ok {
		return ID{}, &UnknownAliasError{Alias: a}
	}
	return id, nil
}

// AliasForID returns the alias that maps to id, or Unknown if id is not a
// row of the built-in table.
func AliasForID(id ID) Alias {
	if a, ok := byID[id]; ok {
		return a
	}
	return Unknown
}

// Name returns the chain's display name ("EOS", "WAX", ... or "UNKNOWN").
func Name(a Alias) string {
	if n, ok := names[a]; ok {
		return n
	}
	return "UNKNOWN"
}

// IDFromHex parses a 64-character lowercase hex string into an ID.
func IDFromHex(s string) (ID, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ID{}, fmt.Errorf("chain: invalid hex chain id: %w", err)
	}
	if len(raw) != 32 {
		return ID{}, fmt.Errorf("chain: chain id must be 32 bytes, got %d", len(raw))
	}
	var id ID
	copy(id[:], raw)
	return id, nil
}

// IDFromBytes copies a 32-byte buffer into an ID.
func IDFromBytes(b []byte) (ID, error) {
	if len(b) != 32 {
		return ID{}, fmt.Errorf("chain: chain id must be 32 bytes, got %d", len(b))
	}
	var id ID
	copy(id[:], b)
	return id, nil
}

// Hex returns the lowercase hex form of id.
func (id ID) Hex() string {
	return hex.EncodeToString(id[:])
}

// Variant is the wire-level tagged union: tag 0 carries a compact alias,
// tag 1 carries the raw 32-byte id.
type Variant struct {
	IsAlias bool
	Alias   Alias
	ID      ID
}

// FromID builds the wire variant for id, preferring the compact alias form
// whenever id matches a row of the built-in table (§4.2, "chainVariant
// prefers the compact alias form when an alias exists").
func FromID(id ID) Variant {
	if a := AliasForID(id); a != Unknown {
		return Variant{IsAlias: true, Alias: a}
	}
	return Variant{IsAlias: false, ID: id}
}

// Resolve returns the 32-byte id this variant designates. Alias-0
// (multi-chain / unknown) has no concrete id and returns the zero ID.
func (v Variant) Resolve() (ID, error) {
	if v.IsAlias {
		if v.Alias == Unknown {
			return ID{}, nil
		}
		return IDForAlias(v.Alias)
	}
	return v.ID, nil
}

// IsMultiChain reports whether this variant is the alias-0 "any chain"
// marker.
func (v Variant) IsMultiChain() bool {
	return v.IsAlias && v.Alias == Unknown
}
