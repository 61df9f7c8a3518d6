package resolve

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/codec"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

func transferABI() codec.ABI {
	return codec.NewABI(map[abival.Name]codec.ActionType{
		abival.NameFromString("transfer"): {
			Fields: []codec.Field{
				{Name: "from", Type: codec.TypeName},
				{Name: "to", Type: codec.TypeName},
				{Name: "quantity", Type: codec.TypeAsset},
				{Name: "memo", Type: codec.TypeString},
			},
		},
	})
}

func transferInput(t *testing.T) Input {
	t.Helper()
	data, err := hex.DecodeString("000000000000285d000000000000ae39e80300000000000003454f53000000000b68656c6c6f207468657265")
	if err != nil {
		t.Fatal(err)
	}
	action := abival.Action{
		Account: abival.NameFromString("eosio.token"),
		Name:    abival.NameFromString("transfer"),
		Authorization: []abival.PermissionLevel{
			{Actor: abival.NameFromString("foo"), Permission: abival.NameFromString("active")},
		},
		Data: data,
	}
	return Input{
		Version:      wire.V2,
		Kind:         wire.KindAction,
		Action:       action,
		ChainVariant: chain.Variant{IsAlias: true, Alias: chain.EOS},
	}
}

// TestResolveS3TaposFillIn mirrors the S3 seed scenario: resolving the S1
// transfer action with a derived-TAPoS context must leave the action data
// untouched and fill exactly ref_block_num / ref_block_prefix / expiration.
func TestResolveS3TaposFillIn(t *testing.T) {
	in := transferInput(t)
	abis := map[abival.Name]codec.ABI{
		abival.NameFromString("eosio.token"): transferABI(),
	}
	signer := abival.PermissionLevel{Actor: abival.NameFromString("foo"), Permission: abival.NameFromString("bar")}

	ts, err := time.Parse("2006-01-02T15:04:05", "2018-02-15T00:00:00")
	if err != nil {
		t.Fatal(err)
	}
	blockNum := uint32(1234)
	refPrefix := uint32(56789)
	expireSeconds := uint32(0)
	ctx := Context{
		Timestamp:      &ts,
		BlockNum:       &blockNum,
		RefBlockPrefix: &refPrefix,
		ExpireSeconds:  &expireSeconds,
	}

	result, err := Resolve(in, abis, signer, ctx, codec.Default)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	h := result.ResolvedTransaction.Header
	if h.RefBlockNum != 1234 {
		t.Errorf("ref_block_num: got %d, want 1234", h.RefBlockNum)
	}
	if h.RefBlockPrefix != 56789 {
		t.Errorf("ref_block_prefix: got %d, want 56789", h.RefBlockPrefix)
	}
	wantExpiration := uint32(ts.Unix())
	if h.Expiration != wantExpiration {
		t.Errorf("expiration: got %d, want %d", h.Expiration, wantExpiration)
	}
	if h.MaxNetUsageWords != 0 || h.MaxCPUUsageMS != 0 || h.DelaySec != 0 {
		t.Errorf("other header fields must be zero, got %+v", h)
	}

	action := result.ResolvedTransaction.Actions[0]
	from, _ := action.Decoded.Get("from")
	to, _ := action.Decoded.Get("to")
	if from.Name.String() != "foo" || to.Name.String() != "bar" {
		t.Errorf("action data must be unchanged, got from=%s to=%s", from.Name, to.Name)
	}

	if hex.EncodeToString(result.Transaction.Actions[0].Data) != hex.EncodeToString(in.Action.Data) {
		t.Errorf("re-encoded action data must round-trip byte-exact")
	}
}

func TestResolveMissingTapos(t *testing.T) {
	in := transferInput(t)
	abis := map[abival.Name]codec.ABI{
		abival.NameFromString("eosio.token"): transferABI(),
	}
	signer := abival.PermissionLevel{Actor: abival.NameFromString("foo"), Permission: abival.NameFromString("bar")}

	_, err := Resolve(in, abis, signer, Context{}, codec.Default)
	if err == nil {
		t.Fatal("expected MissingTaPoS-equivalent error, got nil")
	}
}

func TestResolvePlaceholderFixedPoint(t *testing.T) {
	in := transferInput(t)
	in.Action.Authorization = []abival.PermissionLevel{
		{Actor: abival.PlaceholderActor, Permission: abival.PlaceholderActor},
	}
	abis := map[abival.Name]codec.ABI{
		abival.NameFromString("eosio.token"): transferABI(),
	}
	signer := abival.PermissionLevel{Actor: abival.NameFromString("foo"), Permission: abival.NameFromString("active")}

	expiration := uint32(1000)
	refBlockNum := uint16(1)
	refBlockPrefix := uint32(2)
	ctx := Context{Expiration: &expiration, RefBlockNum: &refBlockNum, RefBlockPrefix: &refBlockPrefix}

	result, err := Resolve(in, abis, signer, ctx, codec.Default)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	auth := result.ResolvedTransaction.Actions[0].Authorization[0]
	if auth.Actor != signer.Actor {
		t.Errorf("actor slot: got %s, want %s", auth.Actor, signer.Actor)
	}
	// Backwards-compat rule: placeholder-1 in the permission slot also
	// resolves to signer.Permission, not signer.Actor.
	if auth.Permission != signer.Permission {
		t.Errorf("permission slot: got %s, want %s", auth.Permission, signer.Permission)
	}
}

func TestResolveMultiChainRequiresChainID(t *testing.T) {
	in := transferInput(t)
	in.ChainVariant = chain.Variant{IsAlias: true, Alias: chain.Unknown}
	abis := map[abival.Name]codec.ABI{
		abival.NameFromString("eosio.token"): transferABI(),
	}
	signer := abival.PermissionLevel{Actor: abival.NameFromString("foo"), Permission: abival.NameFromString("bar")}
	expiration := uint32(1000)
	refBlockNum := uint16(1)
	refBlockPrefix := uint32(2)
	ctx := Context{Expiration: &expiration, RefBlockNum: &refBlockNum, RefBlockPrefix: &refBlockPrefix}

	if _, err := Resolve(in, abis, signer, ctx, codec.Default); err == nil {
		t.Fatal("expected BadChain-equivalent error, got nil")
	}

	waxID, err := chain.IDForAlias(chain.Wax)
	if err != nil {
		t.Fatal(err)
	}
	in.DeclaredChainIDs = []chain.ID{waxID}
	ctx.ChainID = &waxID
	result, err := Resolve(in, abis, signer, ctx, codec.Default)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if result.ChainID != waxID {
		t.Errorf("chain id: got %x, want %x", result.ChainID, waxID)
	}
}
