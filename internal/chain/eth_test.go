package chain

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func TestParsePrivateKeyRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	keyHex := hex.EncodeToString(crypto.FromECDSA(key))

	parsed, err := parsePrivateKey(keyHex)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if crypto.PubkeyToAddress(parsed.PublicKey) != crypto.PubkeyToAddress(key.PublicKey) {
		t.Fatal("parsed key derives a different address")
	}

	// 0x prefix and surrounding whitespace are tolerated.
	parsed, err = parsePrivateKey(" 0x" + keyHex)
	if err != nil {
		t.Fatalf("parse with prefix: %v", err)
	}
	if crypto.PubkeyToAddress(parsed.PublicKey) != crypto.PubkeyToAddress(key.PublicKey) {
		t.Fatal("prefixed key derives a different address")
	}
}

func TestParsePrivateKeyRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "0x", "zzzz", "abcd"} {
		if _, err := parsePrivateKey(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
