// Package keysigner provides a reference SignatureProvider and Authority
// verifier built on secp256k1 (K1), the curve EOSIO-family chains use by
// default. The demo signer derives its key from a BIP39 mnemonic; this is
// illustrative wiring for tests and examples, not a requirement of the
// protocol itself.
package keysigner

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/tyler-smith/go-bip39"

	"github.com/yourusername/signingrequest/src/esr/abival"
)

// MnemonicSigner signs digests with a secp256k1 key derived from a BIP39
// mnemonic. It does not implement full BIP32 derivation: the key is the
// SHA-256 of the mnemonic seed, which is sufficient for a single-key demo
// signer but not a hierarchical wallet.
type MnemonicSigner struct {
	signerName abival.Name
	privateKey *btcec.PrivateKey
}

// NewMnemonicSigner builds a MnemonicSigner for the given actor/permission
// name, deriving its key from mnemonic (and optional BIP39 passphrase).
func NewMnemonicSigner(signer abival.Name, mnemonic, passphrase string) (*MnemonicSigner, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("keysigner: invalid BIP39 mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	scalar := sha256.Sum256(seed)
	priv, _ := btcec.PrivKeyFromBytes(scalar[:])
	return &MnemonicSigner{signerName: signer, privateKey: priv}, nil
}

// PublicKey returns the signer's compressed public key.
func (m *MnemonicSigner) PublicKey() abival.PublicKey {
	var key abival.PublicKey
	key.Type = abival.SigK1
	copy(key.Data[:], m.privateKey.PubKey().SerializeCompressed())
	return key
}

// Sign implements esr.SignatureProvider: it produces a 65-byte compact
// recoverable signature over digest.
func (m *MnemonicSigner) Sign(digest [32]byte) (abival.Name, abival.Signature, error) {
	compact, err := ecdsa.SignCompact(m.privateKey, digest[:], true)
	if err != nil {
		return 0, abival.Signature{}, fmt.Errorf("keysigner: sign failed: %w", err)
	}
	if len(compact) != 65 {
		return 0, abival.Signature{}, fmt.Errorf("keysigner: unexpected compact signature length %d", len(compact))
	}
	var sig abival.Signature
	sig.Type = abival.SigK1
	copy(sig.Data[:], compact)
	return m.signerName, sig, nil
}

// Recover recovers the public key that produced sig over digest.
func Recover(digest [32]byte, sig abival.Signature) (abival.PublicKey, error) {
	if sig.Type != abival.SigK1 {
		return abival.PublicKey{}, fmt.Errorf("keysigner: unsupported signature curve %s", sig.Type)
	}
	pub, _, err := ecdsa.RecoverCompact(sig.Data[:], digest[:])
	if err != nil {
		return abival.PublicKey{}, fmt.Errorf("keysigner: recover failed: %w", err)
	}
	var key abival.PublicKey
	key.Type = abival.SigK1
	copy(key.Data[:], pub.SerializeCompressed())
	return key, nil
}
