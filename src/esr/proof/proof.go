// Package proof implements identity-proof construction, serialization, and
// verification against a weighted-key Authority.
package proof

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/base64u"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/codec"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

// IdentityProof carries an off-chain attestation of account control.
type IdentityProof struct {
	ChainID    chain.ID
	Scope      abival.Name
	Expiration uint32 // seconds since epoch
	Signer     abival.PermissionLevel
	Signature  abival.Signature
}

// textPrefix is the string form's fixed prefix.
const textPrefix = "EOSIO "

// ErrBadProof is returned for a malformed identity-proof string.
var ErrBadProof = errors.New("proof: malformed identity proof")

// New constructs an IdentityProof from a resolved identity request.
func New(chainID chain.ID, scope abival.Name, expiration uint32, signer abival.PermissionLevel, signature abival.Signature) IdentityProof {
	return IdentityProof{ChainID: chainID, Scope: scope, Expiration: expiration, Signer: signer, Signature: signature}
}

// SigningTransaction builds the synthetic Transaction used as the signing
// object for an identity proof.
func SigningTransaction(scope abival.Name, expiration uint32, signer abival.PermissionLevel) abival.Transaction {
	data := codec.EncodeIdentityData(abival.RecordValue([]abival.Field{
		{Key: "scope", Value: abival.NameValue(scope)},
		{Key: "permission", Value: abival.RecordValue([]abival.Field{
			{Key: "actor", Value: abival.NameValue(signer.Actor)},
			{Key: "permission", Value: abival.NameValue(signer.Permission)},
		})},
	}), wire.V3)
	action := abival.Action{
		Account:       codec.ZeroAccount,
		Name:          codec.IdentityActionName,
		Authorization: []abival.PermissionLevel{signer},
		Data:          data,
	}
	return abival.Transaction{
		Header:  abival.Header{Expiration: expiration},
		Actions: []abival.Action{action},
	}
}

// Digest computes the signing digest for an identity proof: the standard
// EOSIO transaction signature digest, SHA-256 of chain id || serialized
// transaction || a zero context-free-actions digest.
func Digest(chainID chain.ID, tx abival.Transaction) [32]byte {
	w := wire.NewWriter()
	wire.WriteTransaction(w, tx)
	var zero [32]byte
	buf := make([]byte, 0, 32+len(w.Bytes())+32)
	buf = append(buf, chainID[:]...)
	buf = append(buf, w.Bytes()...)
	buf = append(buf, zero[:]...)
	return sha256.Sum256(buf)
}

// Recoverer recovers the public key that produced sig over digest
// (implemented by keysigner.Recover for the K1 curve).
type Recoverer func(digest [32]byte, sig abival.Signature) (abival.PublicKey, error)

// Verify checks a proof against authority at current time now, using
// recover to recover the signing key from the signature.
func Verify(p IdentityProof, authority abival.Authority, now int64, recover Recoverer) (bool, error) {
	if uint32(now) >= p.Expiration {
		return false, nil
	}
	tx := SigningTransaction(p.Scope, p.Expiration, p.Signer)
	digest := Digest(p.ChainID, tx)
	key, err := recover(digest, p.Signature)
	if err != nil {
		return false, err
	}
	return authority.Satisfies(key), nil
}

// Encode serializes p to its binary form.
func Encode(p IdentityProof) []byte {
	w := wire.NewWriter()
	w.WriteRawBytes(p.ChainID[:])
	w.WriteName(p.Scope)
	w.WriteUint32(p.Expiration)
	wire.WritePermissionLevel(w, p.Signer)
	w.WriteByte(byte(p.Signature.Type))
	w.WriteRawBytes(p.Signature.Data[:])
	return w.Bytes()
}

// Decode is the inverse of Encode.
func Decode(data []byte) (IdentityProof, error) {
	r := wire.NewReader(data)
	raw, err := r.ReadRawBytes(32)
	if err != nil {
		return IdentityProof{}, fmt.Errorf("%w: %v", ErrBadProof, err)
	}
	var p IdentityProof
	copy(p.ChainID[:], raw)
	if p.Scope, err = r.ReadName(); err != nil {
		return IdentityProof{}, fmt.Errorf("%w: %v", ErrBadProof, err)
	}
	if p.Expiration, err = r.ReadUint32(); err != nil {
		return IdentityProof{}, fmt.Errorf("%w: %v", ErrBadProof, err)
	}
	if p.Signer, err = wire.ReadPermissionLevel(r); err != nil {
		return IdentityProof{}, fmt.Errorf("%w: %v", ErrBadProof, err)
	}
	typ, err := r.ReadByte()
	if err != nil {
		return IdentityProof{}, fmt.Errorf("%w: %v", ErrBadProof, err)
	}
	sigBytes, err := r.ReadRawBytes(65)
	if err != nil {
		return IdentityProof{}, fmt.Errorf("%w: %v", ErrBadProof, err)
	}
	p.Signature.Type = abival.SigType(typ)
	copy(p.Signature.Data[:], sigBytes)
	return p, nil
}

// String renders p as "EOSIO " + base64u(encode(p)).
func String(p IdentityProof) string {
	return textPrefix + base64u.Encode(Encode(p))
}

// Parse is the inverse of String.
func Parse(s string) (IdentityProof, error) {
	if len(s) <= len(textPrefix) || s[:len(textPrefix)] != textPrefix {
		return IdentityProof{}, ErrBadProof
	}
	raw, err := base64u.Decode(s[len(textPrefix):])
	if err != nil {
		return IdentityProof{}, fmt.Errorf("%w: %v", ErrBadProof, err)
	}
	return Decode(raw)
}
