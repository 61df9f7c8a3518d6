package wire

import "github.com/yourusername/signingrequest/src/esr/abival"

// Frame is the fully decoded binary carrier: a payload plus an optional
// originator signature trailer.
type Frame struct {
	Version    Version
	Compressed bool
	Payload    Payload
	PayloadRaw []byte // the (decompressed) serialized Payload bytes
	Signer     abival.Name
	Signature  *abival.Signature
}

// HeaderByte packs the version (low 7 bits) and compressed flag (top bit).
func HeaderByte(version Version, compressed bool) byte {
	b := byte(version) & 0x7f
	if compressed {
		b |= 0x80
	}
	return b
}

// SplitHeaderByte unpacks a header byte into version and compressed flag.
func SplitHeaderByte(b byte) (Version, bool) {
	return Version(b & 0x7f), b&0x80 != 0
}

func writeSignature(w *Writer, signer abival.Name, sig *abival.Signature) {
	if sig == nil {
		return
	}
	w.WriteName(signer)
	w.WriteByte(byte(sig.Type))
	w.WriteRawBytes(sig.Data[:])
}

func readSignatureIfPresent(r *Reader) (abival.Name, *abival.Signature, error) {
	if !r.HasMore() {
		return 0, nil, nil
	}
	signer, err := r.ReadName()
	if err != nil {
		return 0, nil, err
	}
	typ, err := r.ReadByte()
	if err != nil {
		return 0, nil, err
	}
	raw, err := r.ReadRawBytes(65)
	if err != nil {
		return 0, nil, err
	}
	var sig abival.Signature
	sig.Type = abival.SigType(typ)
	copy(sig.Data[:], raw)
	return signer, &sig, nil
}

// EncodeSignatureTrailer serializes the optional signer+signature trailer
// that follows the payload in a frame; it is empty when sig is nil.
func EncodeSignatureTrailer(signer abival.Name, sig *abival.Signature) []byte {
	w := NewWriter()
	writeSignature(w, signer, sig)
	return w.Bytes()
}

// DecodeFrame parses header+payload(+signature) bytes that have already
// been through base64u-decoding and (if the header's top bit was set)
// INFLATE. body is the raw payload bytes followed optionally by the
// signature trailer.
func DecodeFrame(headerByte byte, body []byte) (Frame, error) {
	version, compressed := SplitHeaderByte(headerByte)
	r := NewReader(body)

	payloadStart := r.pos
	payload, err := ReadPayload(r, version)
	if err != nil {
		return Frame{}, err
	}
	payloadEnd := r.pos
	payloadRaw := body[payloadStart:payloadEnd]

	signer, sig, err := readSignatureIfPresent(r)
	if err != nil {
		return Frame{}, err
	}

	return Frame{
		Version:    version,
		Compressed: compressed,
		Payload:    payload,
		PayloadRaw: payloadRaw,
		Signer:     signer,
		Signature:  sig,
	}, nil
}

// EncodePayloadBytes serializes payload under version, returning the raw
// bytes (pre-compression, pre-signature) used both as the frame body and
// as the originator-signature digest input.
func EncodePayloadBytes(version Version, payload Payload) []byte {
	w := NewWriter()
	WritePayload(w, version, payload)
	return w.Bytes()
}

