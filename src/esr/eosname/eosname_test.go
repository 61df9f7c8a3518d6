package eosname

import (
	"testing"

	"github.com/yourusername/signingrequest/src/esr/abival"
)

func testKey() abival.PublicKey {
	var k abival.PublicKey
	k.Type = abival.SigK1
	for i := range k.Data {
		k.Data[i] = byte(i + 2)
	}
	k.Data[0] = 0x02
	return k
}

func TestPublicKeyRoundTrip(t *testing.T) {
	key := testKey()

	legacy := EncodeLegacyPublicKey(key)
	got, err := ParsePublicKey(legacy)
	if err != nil {
		t.Fatalf("parse legacy: %v", err)
	}
	if got != key {
		t.Errorf("legacy round trip mismatch")
	}

	typed := EncodePublicKey(key)
	got, err = ParsePublicKey(typed)
	if err != nil {
		t.Fatalf("parse typed: %v", err)
	}
	if got != key {
		t.Errorf("typed round trip mismatch")
	}
}

func TestSignatureRoundTrip(t *testing.T) {
	var sig abival.Signature
	sig.Type = abival.SigK1
	for i := range sig.Data {
		sig.Data[i] = byte(i)
	}

	s := EncodeSignature(sig)
	got, err := ParseSignature(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != sig {
		t.Errorf("signature round trip mismatch")
	}
}

func TestParsePublicKeyBadChecksum(t *testing.T) {
	key := testKey()
	s := EncodeLegacyPublicKey(key)
	corrupted := s[:len(s)-1] + "z"
	if _, err := ParsePublicKey(corrupted); err == nil {
		t.Fatal("expected checksum error")
	}
}
