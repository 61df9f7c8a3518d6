package esr

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/codec"
)

var tokenABI = codec.NewABI(map[abival.Name]codec.ActionType{
	abival.NameFromString("transfer"): {
		Fields: []codec.Field{
			{Name: "from", Type: codec.TypeName},
			{Name: "to", Type: codec.TypeName},
			{Name: "quantity", Type: codec.TypeAsset},
			{Name: "memo", Type: codec.TypeString},
		},
	},
})

func transferAction() abival.Action {
	decoded := abival.RecordValue([]abival.Field{
		{Key: "from", Value: abival.NameValue(abival.PlaceholderActor)},
		{Key: "to", Value: abival.NameValue(abival.NameFromString("alice"))},
		{Key: "quantity", Value: abival.StringValue("1.0000 EOS")},
		{Key: "memo", Value: abival.StringValue("")},
	})
	return abival.Action{
		Account:       abival.NameFromString("eosio.token"),
		Name:          abival.NameFromString("transfer"),
		Authorization: []abival.PermissionLevel{abival.PlaceholderAuth},
		Decoded:       &decoded,
	}
}

func TestCreateEncodeDecodeRoundTrip(t *testing.T) {
	action := transferAction()
	chainID, err := chain.IDForAlias(chain.EOS)
	require.NoError(t, err)

	req, err := CreateSync(Descriptor{
		Action:  &action,
		ChainID: &chainID,
	}, Options{}, map[abival.Name]codec.ABI{abival.NameFromString("eosio.token"): tokenABI})
	require.NoError(t, err)
	assert.True(t, req.ShouldBroadcast(), "non-identity requests broadcast by default")

	uri := req.String(DefaultScheme, true, nil)
	require.True(t, strings.HasPrefix(uri, "esr://"))

	decoded, err := From(uri, nil)
	require.NoError(t, err)
	assert.False(t, decoded.IsIdentity())

	gotID, err := decoded.GetChainId()
	require.NoError(t, err)
	assert.Equal(t, chainID, gotID)
}

func TestCreateEncodeDecodeRoundTripRawData(t *testing.T) {
	// FromData should accept the raw bytes Encode returns without the
	// scheme/base64url wrapper.
	action := transferAction()
	chainID, err := chain.IDForAlias(chain.Wax)
	require.NoError(t, err)

	req, err := CreateSync(Descriptor{
		Action:  &action,
		ChainID: &chainID,
	}, Options{}, map[abival.Name]codec.ABI{abival.NameFromString("eosio.token"): tokenABI})
	require.NoError(t, err)

	data := req.Encode(false, nil)
	decoded, err := FromData(data, nil)
	require.NoError(t, err)

	decodedID, err := decoded.GetChainId()
	require.NoError(t, err)
	assert.Equal(t, chainID, decodedID)
}

func TestResolveSignAndCallback(t *testing.T) {
	action := transferAction()
	chainID, err := chain.IDForAlias(chain.EOS)
	require.NoError(t, err)

	req, err := CreateSync(Descriptor{
		Action:             &action,
		ChainID:            &chainID,
		CallbackURL:        "https://example.com/cb?sig={{sig}}&tx={{tx}}",
		CallbackBackground: true,
	}, Options{}, map[abival.Name]codec.ABI{abival.NameFromString("eosio.token"): tokenABI})
	require.NoError(t, err)

	refBlockNum := uint16(10)
	refBlockPrefix := uint32(20)
	expiration := uint32(1893456000)
	signer := abival.PermissionLevel{Actor: abival.NameFromString("bob"), Permission: abival.NameFromString("active")}

	resolved, err := req.ResolveTransaction(
		map[abival.Name]codec.ABI{abival.NameFromString("eosio.token"): tokenABI},
		signer,
		Context{RefBlockNum: &refBlockNum, RefBlockPrefix: &refBlockPrefix, Expiration: &expiration},
	)
	require.NoError(t, err)
	assert.Equal(t, signer, resolved.Signer())
	assert.Equal(t, signer, resolved.ResolvedTransaction().Actions[0].Authorization[0])

	sig := abival.Signature{Type: abival.SigK1}
	callback, err := resolved.GetCallback([]abival.Signature{sig}, nil)
	require.NoError(t, err)
	require.NotNil(t, callback)
	assert.True(t, callback.Background)
}

func TestIdentityRequestNeverBroadcasts(t *testing.T) {
	scope := abival.NameFromString("myapp")
	req, err := Identity(IdentityDescriptor{Scope: &scope}, Options{})
	require.NoError(t, err)
	assert.False(t, req.ShouldBroadcast())
	assert.Error(t, req.SetBroadcast(true))
}

func TestFromRejectsUnknownScheme(t *testing.T) {
	_, err := From("notascheme://abc", nil)
	require.Error(t, err)
	assert.True(t, Is(err, InvalidScheme))
}

// TestS2DecodePlaceholderAction decodes a placeholder-carrying transfer
// action straight from its URI fixture with no ABI involved (data is read
// back raw, undecoded).
func TestS2DecodePlaceholderAction(t *testing.T) {
	const uri = "esr://gmNgZGBY1mTC_MoglIGBIVzX5uxZRqAQGMBoExgDAjRi4fwAVz93ICUckpGYl12skJZfpFCSkaqQllmcwczAAAA"
	req, err := From(uri, nil)
	require.NoError(t, err)
	assert.False(t, req.IsIdentity())

	actions := req.GetRawActions()
	require.Len(t, actions, 1)
	a := actions[0]
	assert.Equal(t, abival.NameFromString("eosio.token"), a.Account)
	assert.Equal(t, abival.NameFromString("transfer"), a.Name)
	require.Len(t, a.Authorization, 1)
	assert.Equal(t, abival.PlaceholderActor, a.Authorization[0].Actor)
	assert.Equal(t, abival.PlaceholderActor, a.Authorization[0].Permission)

	const wantData = "0100000000000000000000000000285d01000000000000000050454e47000000135468616e6b7320666f72207468652066697368"
	assert.Equal(t, wantData, hex.EncodeToString(a.Data))
}

func TestGetIdentityProofRejectsNonIdentity(t *testing.T) {
	action := transferAction()
	chainID, err := chain.IDForAlias(chain.EOS)
	require.NoError(t, err)

	req, err := CreateSync(Descriptor{Action: &action, ChainID: &chainID}, Options{},
		map[abival.Name]codec.ABI{abival.NameFromString("eosio.token"): tokenABI})
	require.NoError(t, err)

	refBlockNum := uint16(1)
	refBlockPrefix := uint32(2)
	expiration := uint32(1893456000)
	resolved, err := req.ResolveTransaction(
		map[abival.Name]codec.ABI{abival.NameFromString("eosio.token"): tokenABI},
		abival.PermissionLevel{Actor: abival.NameFromString("bob"), Permission: abival.NameFromString("active")},
		Context{RefBlockNum: &refBlockNum, RefBlockPrefix: &refBlockPrefix, Expiration: &expiration},
	)
	require.NoError(t, err)

	_, err = resolved.GetIdentityProof(abival.Signature{})
	assert.Error(t, err)
}

func TestFromPayloadRoundTrip(t *testing.T) {
	waxID, err := chain.IDForAlias(chain.Wax)
	require.NoError(t, err)

	dict := map[string]string{
		"tx":  "deadbeef",
		"rbn": "1234",
		"rid": "56789",
		"ex":  "1893456000",
		"sa":  "bob",
		"sp":  "active",
		"cid": waxID.Hex(),
	}
	got, err := FromPayload(dict)
	require.NoError(t, err)

	assert.Equal(t, "deadbeef", got.TransactionID)
	assert.EqualValues(t, 1234, got.RefBlockNum)
	assert.EqualValues(t, 56789, got.RefBlockPrefix)
	assert.EqualValues(t, 1893456000, got.Expiration)
	assert.Equal(t, abival.NameFromString("bob"), got.SignerActor)
	assert.Equal(t, abival.NameFromString("active"), got.SignerPermission)
	assert.Equal(t, waxID, got.ChainID)
}
