// Package eosname implements the legacy EOSIO-family base58-with-checksum
// text form for public keys and signatures: "EOS..." / "PUB_K1_..." /
// "SIG_K1_...". It is used by keysigner and by typed info-pair
// getters/setters for Signature-typed values.
package eosname

import (
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/yourusername/signingrequest/src/esr/abival"
)

func checksum(data []byte, suffix string) [4]byte {
	h := ripemd160.New()
	h.Write(data)
	h.Write([]byte(suffix))
	sum := h.Sum(nil)
	var out [4]byte
	copy(out[:], sum[:4])
	return out
}

// EncodePublicKey renders key in the modern typed form: "PUB_K1_..." /
// "PUB_R1_...".
func EncodePublicKey(key abival.PublicKey) string {
	curve := key.Type.String()
	sum := checksum(key.Data[:], curve)
	payload := append(append([]byte{}, key.Data[:]...), sum[:]...)
	return fmt.Sprintf("PUB_%s_%s", curve, base58.Encode(payload))
}

// EncodeLegacyPublicKey renders key in the legacy "EOS..." form, which only
// ever meant K1.
func EncodeLegacyPublicKey(key abival.PublicKey) string {
	sum := checksum(key.Data[:], "")
	payload := append(append([]byte{}, key.Data[:]...), sum[:]...)
	return "EOS" + base58.Encode(payload)
}

// EncodeSignature renders sig in the typed "SIG_K1_..." / "SIG_R1_..." form.
func EncodeSignature(sig abival.Signature) string {
	curve := sig.Type.String()
	sum := checksum(sig.Data[:], curve)
	payload := append(append([]byte{}, sig.Data[:]...), sum[:]...)
	return fmt.Sprintf("SIG_%s_%s", curve, base58.Encode(payload))
}

// ParsePublicKey parses either the legacy "EOS..." or typed "PUB_K1_..." /
// "PUB_R1_..." form, validating the checksum.
func ParsePublicKey(s string) (abival.PublicKey, error) {
	if len(s) > 3 && s[:3] == "EOS" {
		return parseLegacyPublicKey(s)
	}
	if len(s) > 7 && s[:4] == "PUB_" {
		return parseTypedPublicKey(s)
	}
	return abival.PublicKey{}, fmt.Errorf("eosname: unrecognized public key form %q", s)
}

func parseLegacyPublicKey(s string) (abival.PublicKey, error) {
	raw, err := base58.Decode(s[3:])
	if err != nil {
		return abival.PublicKey{}, fmt.Errorf("eosname: invalid base58: %w", err)
	}
	if len(raw) != 37 {
		return abival.PublicKey{}, fmt.Errorf("eosname: invalid legacy public key length %d", len(raw))
	}
	var key abival.PublicKey
	key.Type = abival.SigK1
	copy(key.Data[:], raw[:33])
	want := checksum(key.Data[:], "")
	if !bytesEqual(want[:], raw[33:]) {
		return abival.PublicKey{}, fmt.Errorf("eosname: checksum mismatch")
	}
	return key, nil
}

func parseTypedPublicKey(s string) (abival.PublicKey, error) {
	curve, rest, err := splitTyped(s, "PUB_")
	if err != nil {
		return abival.PublicKey{}, err
	}
	raw, err := base58.Decode(rest)
	if err != nil {
		return abival.PublicKey{}, fmt.Errorf("eosname: invalid base58: %w", err)
	}
	if len(raw) != 37 {
		return abival.PublicKey{}, fmt.Errorf("eosname: invalid public key length %d", len(raw))
	}
	var key abival.PublicKey
	key.Type = curve
	copy(key.Data[:], raw[:33])
	want := checksum(key.Data[:], key.Type.String())
	if !bytesEqual(want[:], raw[33:]) {
		return abival.PublicKey{}, fmt.Errorf("eosname: checksum mismatch")
	}
	return key, nil
}

// ParseSignature parses the typed "SIG_K1_..." / "SIG_R1_..." form,
// validating the checksum.
func ParseSignature(s string) (abival.Signature, error) {
	curve, rest, err := splitTyped(s, "SIG_")
	if err != nil {
		return abival.Signature{}, err
	}
	raw, err := base58.Decode(rest)
	if err != nil {
		return abival.Signature{}, fmt.Errorf("eosname: invalid base58: %w", err)
	}
	if len(raw) != 69 {
		return abival.Signature{}, fmt.Errorf("eosname: invalid signature length %d", len(raw))
	}
	var sig abival.Signature
	sig.Type = curve
	copy(sig.Data[:], raw[:65])
	want := checksum(sig.Data[:], sig.Type.String())
	if !bytesEqual(want[:], raw[65:]) {
		return abival.Signature{}, fmt.Errorf("eosname: checksum mismatch")
	}
	return sig, nil
}

func splitTyped(s, prefix string) (abival.SigType, string, error) {
	if len(s) <= len(prefix)+3 || s[:len(prefix)] != prefix {
		return 0, "", fmt.Errorf("eosname: unrecognized form %q", s)
	}
	rest := s[len(prefix):]
	switch {
	case len(rest) > 3 && rest[:3] == "K1_":
		return abival.SigK1, rest[3:], nil
	case len(rest) > 3 && rest[:3] == "R1_":
		return abival.SigR1, rest[3:], nil
	default:
		return 0, "", fmt.Errorf("eosname: unrecognized curve tag in %q", s)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
