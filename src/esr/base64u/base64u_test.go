package base64u

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0xff},
		[]byte("hello there"),
		bytes.Repeat([]byte{0xab, 0xcd, 0xef}, 37),
	}

	for _, c := range cases {
		t.Run("", func(t *testing.T) {
			encoded := Encode(c)
			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(decoded, c) {
				t.Fatalf("round trip mismatch: got %x want %x", decoded, c)
			}
		})
	}
}

func TestNoPadding(t *testing.T) {
	encoded := Encode([]byte("f"))
	if bytes.ContainsRune([]byte(encoded), '=') {
		t.Fatalf("encoded output contains padding: %q", encoded)
	}
}

func TestAcceptsStandardAlphabet(t *testing.T) {
	// "\xff\xef\xfe" encodes to "/+/+" in the URL-safe alphabet it maps to "_-_-".
	std := "/+/+"
	urlSafe := "_-_-"

	a, err := Decode(std)
	if err != nil {
		t.Fatalf("Decode(std) failed: %v", err)
	}
	b, err := Decode(urlSafe)
	if err != nil {
		t.Fatalf("Decode(urlSafe) failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("std and url-safe alphabets decoded differently: %x vs %x", a, b)
	}
}

func TestInvalidCharacter(t *testing.T) {
	if _, err := Decode("not valid!!"); err == nil {
		t.Fatal("expected error for invalid character")
	}
}
