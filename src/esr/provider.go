package esr

import (
	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/codec"
)

// ABI is the ABI object handed back by an AbiProvider and consumed by the
// resolver's ActionCodec.
type ABI = codec.ABI

// AbiProvider fetches the ABI for an account, by name. It is the one
// blocking call the core makes on a caller's behalf: the core tolerates
// this call failing and surfaces the error unchanged.
type AbiProvider interface {
	GetAbi(account abival.Name) (ABI, error)
}

// AbiProviderFunc adapts a plain function to an AbiProvider.
type AbiProviderFunc func(account abival.Name) (ABI, error)

func (f AbiProviderFunc) GetAbi(account abival.Name) (ABI, error) { return f(account) }

// Compressor performs raw DEFLATE/INFLATE with no wrapper header and no
// checksum.
type Compressor interface {
	Deflate(data []byte) ([]byte, error)
	Inflate(data []byte) ([]byte, error)
}

// SignatureProvider produces a signature over a 32-byte digest.
type SignatureProvider interface {
	Sign(digest [32]byte) (signer abival.Name, sig abival.Signature, err error)
}

// SignatureProviderFunc adapts a plain function to a SignatureProvider.
type SignatureProviderFunc func(digest [32]byte) (abival.Name, abival.Signature, error)

func (f SignatureProviderFunc) Sign(digest [32]byte) (abival.Name, abival.Signature, error) {
	return f(digest)
}
