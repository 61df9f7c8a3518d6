// Package callback implements the `{{key}}` URL templating and payload
// construction used to notify a wallet's callback endpoint after signing.
package callback

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/chain"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

// ErrNeedSignature is returned when a callback is requested with zero
// signatures.
var ErrNeedSignature = errors.New("callback: at least one signature is required")

// Payload is the fixed callback payload schema. BlockNum is an optional
// hint the caller may supply.
type Payload struct {
	Signatures  []abival.Signature
	Transaction abival.Transaction
	ChainID     chain.ID
	RequestURI  string
	Signer      abival.PermissionLevel
	BlockNum    *uint32
}

// Resolved is the outcome of templating: the substituted URL, the
// background flag carried from the request, and the full payload
// dictionary.
type Resolved struct {
	URL        string
	Background bool
	Dict       map[string]string
}

// Build constructs the payload dictionary and templated URL for a
// resolved, signed request.
func Build(template string, background bool, p Payload, sigFn func(abival.Signature) string) (Resolved, error) {
	if len(p.Signatures) == 0 {
		return Resolved{}, ErrNeedSignature
	}

	w := wire.NewWriter()
	wire.WriteTransaction(w, p.Transaction)
	txID := sha256.Sum256(w.Bytes())

	dict := map[string]string{
		"sig": sigFn(p.Signatures[0]),
		"tx":  hex.EncodeToString(txID[:]),
		"rbn": strconv.Itoa(int(p.Transaction.RefBlockNum)),
		"rid": strconv.FormatUint(uint64(p.Transaction.RefBlockPrefix), 10),
		"ex":  strconv.FormatUint(uint64(p.Transaction.Expiration), 10),
		"req": p.RequestURI,
		"sa":  p.Signer.Actor.String(),
		"sp":  p.Signer.Permission.String(),
		"cid": p.ChainID.Hex(),
	}
	for i, sig := range p.Signatures[1:] {
		dict["sig"+strconv.Itoa(i)] = sigFn(sig)
	}
	if p.BlockNum != nil {
		dict["bn"] = strconv.FormatUint(uint64(*p.BlockNum), 10)
	}

	return Resolved{
		URL:        substitute(template, dict),
		Background: background,
		Dict:       dict,
	}, nil
}

func substitute(template string, dict map[string]string) string {
	var out strings.Builder
	for i := 0; i < len(template); {
		if template[i] == '{' && i+1 < len(template) && template[i+1] == '{' {
			end := strings.Index(template[i+2:], "}}")
			if end >= 0 {
				key := template[i+2 : i+2+end]
				out.WriteString(dict[key])
				i = i + 2 + end + 2
				continue
			}
		}
		out.WriteByte(template[i])
		i++
	}
	return out.String()
}
