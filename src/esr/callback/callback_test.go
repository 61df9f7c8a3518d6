package callback

import (
	"strings"
	"testing"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/chain"
)

func TestBuildSubstitutesKnownKeys(t *testing.T) {
	waxID, err := chain.IDForAlias(chain.Wax)
	if err != nil {
		t.Fatal(err)
	}
	p := Payload{
		Signatures:  []abival.Signature{{Type: abival.SigK1}},
		Transaction: abival.Transaction{Header: abival.Header{RefBlockNum: 1234, RefBlockPrefix: 56789, Expiration: 1000}},
		ChainID:     waxID,
		Signer:      abival.PermissionLevel{Actor: abival.NameFromString("foo"), Permission: abival.NameFromString("active")},
	}
	resolved, err := Build("myapp://login={{cid}}&sig={{sig}}&missing={{nope}}", false, p, func(s abival.Signature) string { return "SIG_K1_x" })
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasSuffix(resolved.URL, "=1064487b3cd1a897ce03ae5b6a865651747e2e152090f99c1d19d44e01aea5a4&sig=SIG_K1_x&missing=") {
		t.Errorf("unexpected url: %s", resolved.URL)
	}
	if resolved.Dict["rbn"] != "1234" || resolved.Dict["rid"] != "56789" {
		t.Errorf("unexpected dict: %+v", resolved.Dict)
	}
}

func TestBuildNeedsSignature(t *testing.T) {
	_, err := Build("x", false, Payload{}, func(abival.Signature) string { return "" })
	if err != ErrNeedSignature {
		t.Fatalf("expected ErrNeedSignature, got %v", err)
	}
}
