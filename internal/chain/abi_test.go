package chain

import (
	"os"
	"path/filepath"
	"testing"
)

const transferABI = `[{"inputs":[{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}]`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contract_abi.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp abi: %v", err)
	}
	return path
}

func TestLoadContractABIBareArray(t *testing.T) {
	parsed, err := LoadContractABI(writeTemp(t, transferABI))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := parsed.Methods["transfer"]; !ok {
		t.Fatal("transfer method missing from parsed ABI")
	}
}

func TestLoadContractABICompilerArtifact(t *testing.T) {
	parsed, err := LoadContractABI(writeTemp(t, `{"contractName":"Token","abi":`+transferABI+`}`))
	if err != nil {
		t.Fatalf("load artifact: %v", err)
	}
	if _, ok := parsed.Methods["transfer"]; !ok {
		t.Fatal("transfer method missing from artifact ABI")
	}
}

func TestLoadContractABIErrors(t *testing.T) {
	if _, err := LoadContractABI(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadContractABI(writeTemp(t, "not json")); err == nil {
		t.Fatal("expected error for malformed artifact")
	}
}
