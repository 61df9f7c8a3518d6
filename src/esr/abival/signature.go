package abival

// SigType tags which curve/scheme produced a Signature.
type SigType uint8

const (
	SigK1 SigType = iota // secp256k1, the EOSIO-family default
	SigR1                // secp256r1
)

// Signature is a typed chain signature: a 65-byte recoverable ECDSA
// signature (compact r||s||recovery-id) tagged with the curve it was
// produced under.
type Signature struct {
	Type SigType
	Data [65]byte
}

func (s SigType) String() string {
	switch s {
	case SigK1:
		return "K1"
	case SigR1:
		return "R1"
	default:
		return "UNKNOWN"
	}
}

// PublicKey is a typed, compressed chain public key (33 bytes).
type PublicKey struct {
	Type SigType
	Data [33]byte
}

// KeyWeight is one (key, weight) entry of an Authority.
type KeyWeight struct {
	Key    PublicKey
	Weight uint16
}

// Authority is a weighted-key threshold authority: a signature is
// sufficient when the weight of the key that produced it meets Threshold
// on its own.
type Authority struct {
	Threshold uint32
	Keys      []KeyWeight
}

// Satisfies reports whether key alone meets the authority's threshold.
func (a Authority) Satisfies(key PublicKey) bool {
	for _, kw := range a.Keys {
		if kw.Key == key && uint32(kw.Weight) >= a.Threshold {
			return true
		}
	}
	return false
}
