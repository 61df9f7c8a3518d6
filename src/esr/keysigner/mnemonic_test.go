package keysigner

import (
	"crypto/sha256"
	"testing"

	"github.com/yourusername/signingrequest/src/esr/abival"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestSignAndRecover(t *testing.T) {
	signerName := abival.NameFromString("foo")
	signer, err := NewMnemonicSigner(signerName, testMnemonic, "")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	digest := sha256.Sum256([]byte("hello there"))
	name, sig, err := signer.Sign(digest)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if name != signerName {
		t.Errorf("signer name: got %s, want %s", name, signerName)
	}

	recovered, err := Recover(digest, sig)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if recovered != signer.PublicKey() {
		t.Errorf("recovered key does not match signer's public key")
	}
}

func TestInvalidMnemonic(t *testing.T) {
	if _, err := NewMnemonicSigner(abival.NameFromString("foo"), "not a valid mnemonic", ""); err == nil {
		t.Fatal("expected error for invalid mnemonic")
	}
}
