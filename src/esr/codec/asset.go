package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// Asset is the EOSIO-style (amount, precision, symbol-code) triple, e.g.
// "1.000 EOS".
type Asset struct {
	Amount    int64
	Precision uint8
	Symbol    string // up to 7 upper-case letters
}

// ParseAsset parses the "1.000 EOS" textual form.
func ParseAsset(s string) (Asset, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, fmt.Errorf("codec: invalid asset %q", s)
	}
	amountStr, symbol := parts[0], parts[1]
	if len(symbol) == 0 || len(symbol) > 7 {
		return Asset{}, fmt.Errorf("codec: invalid asset symbol %q", symbol)
	}

	dot := strings.IndexByte(amountStr, '.')
	precision := 0
	digits := amountStr
	if dot >= 0 {
		precision = len(amountStr) - dot - 1
		digits = amountStr[:dot] + amountStr[dot+1:]
	}
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Asset{}, fmt.Errorf("codec: invalid asset amount %q: %w", amountStr, err)
	}

	return Asset{Amount: amount, Precision: uint8(precision), Symbol: symbol}, nil
}

// String renders the asset back to its textual form.
func (a Asset) String() string {
	neg := ""
	amount := a.Amount
	if amount < 0 {
		neg = "-"
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	if a.Precision == 0 {
		return fmt.Sprintf("%s%s %s", neg, s, a.Symbol)
	}
	for len(s) <= int(a.Precision) {
		s = "0" + s
	}
	whole := s[:len(s)-int(a.Precision)]
	frac := s[len(s)-int(a.Precision):]
	return fmt.Sprintf("%s%s.%s %s", neg, whole, frac, a.Symbol)
}

// symbolCode packs the symbol into the 8-byte (precision + 7-char code)
// on-wire form used by EOSIO-family chains.
func (a Asset) symbolCode() uint64 {
	var code uint64
	for i := len(a.Symbol) - 1; i >= 0; i-- {
		code = code<<8 | uint64(a.Symbol[i])
	}
	return code<<8 | uint64(a.Precision)
}

func symbolFromCode(code uint64) (precision uint8, symbol string) {
	precision = uint8(code & 0xff)
	code >>= 8
	var b []byte
	for code != 0 {
		b = append(b, byte(code&0xff))
		code >>= 8
	}
	return precision, string(b)
}
