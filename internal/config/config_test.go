package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(t.TempDir()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RPCURL != "http://localhost:8545" {
		t.Errorf("RPCURL = %q", cfg.RPCURL)
	}
	if cfg.ChainID != DefaultChainID {
		t.Errorf("ChainID = %d, want %d", cfg.ChainID, DefaultChainID)
	}
	if cfg.ContractAddress != DefaultContractAddress {
		t.Errorf("ContractAddress = %q", cfg.ContractAddress)
	}
	if cfg.GasLimit != 3_000_000 {
		t.Errorf("GasLimit = %d, want 3000000", cfg.GasLimit)
	}
	if _, err := cfg.Contract(); err != nil {
		t.Errorf("Contract: %v", err)
	}
}

func TestLoadConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	data := []byte("rpc_url: https://sepolia.example.org\ngas_limit: 500000\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(New(dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RPCURL != "https://sepolia.example.org" {
		t.Errorf("RPCURL = %q, want file value", cfg.RPCURL)
	}
	if cfg.GasLimit != 500_000 {
		t.Errorf("GasLimit = %d, want 500000", cfg.GasLimit)
	}
	// Untouched keys keep their defaults.
	if cfg.ChainID != DefaultChainID {
		t.Errorf("ChainID = %d, want default", cfg.ChainID)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ROOMSHARE_RPC_URL", "wss://node.example.org")

	cfg, err := Load(New(t.TempDir()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RPCURL != "wss://node.example.org" {
		t.Errorf("RPCURL = %q, want env value", cfg.RPCURL)
	}
}

func TestLoadRejectsBadContractAddress(t *testing.T) {
	v := New(t.TempDir())
	v.Set("contract_address", "not-an-address")
	if _, err := Load(v); err == nil {
		t.Fatal("Load: expected error for malformed contract address")
	}
}
