package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{
		Wallet: WalletConfig{
			PrivateKey:    "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291",
			FunderAddress: "0x1111111111111111111111111111111111111111",
		},
		Market: MarketConfig{TokenID: "123456"},
	}
	applyDefaults(cfg)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Host != DefaultHost {
		t.Fatalf("unexpected host: %s", cfg.Host)
	}
	if cfg.ChainID != 137 {
		t.Fatalf("unexpected chain id: %d", cfg.ChainID)
	}
	if cfg.Market.Symbol != "ETHUSDT" || cfg.Market.Interval != "1m" || cfg.Market.Lookback != 60 {
		t.Fatalf("unexpected market defaults: %+v", cfg.Market)
	}
	if cfg.Session.SpendCeiling != 20.0 {
		t.Fatalf("unexpected spend ceiling: %f", cfg.Session.SpendCeiling)
	}
	if cfg.Session.OrderSize != 5.0 {
		t.Fatalf("unexpected order size: %f", cfg.Session.OrderSize)
	}
	if cfg.Session.EdgeThreshold != 10.0 {
		t.Fatalf("unexpected edge threshold: %f", cfg.Session.EdgeThreshold)
	}
	if cfg.Session.PollIntervalSec != 20 {
		t.Fatalf("unexpected poll interval: %d", cfg.Session.PollIntervalSec)
	}
	if cfg.Session.DurationMin != 60 {
		t.Fatalf("unexpected duration: %d", cfg.Session.DurationMin)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
chain_id: 80002
market:
  token_id: "from-file"
session:
  spend_ceiling: 40
  order_size: 2.5
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("UP_TOKEN_ID", "from-env")
	t.Setenv("PRIVATE_KEY", "deadbeef")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ChainID != 80002 {
		t.Fatalf("file value not applied: %d", cfg.ChainID)
	}
	if cfg.Session.SpendCeiling != 40.0 || cfg.Session.OrderSize != 2.5 {
		t.Fatalf("session file values not applied: %+v", cfg.Session)
	}
	// 环境变量覆盖文件值
	if cfg.Market.TokenID != "from-env" {
		t.Fatalf("env override not applied: %s", cfg.Market.TokenID)
	}
	if cfg.Wallet.PrivateKey != "deadbeef" {
		t.Fatalf("env private key not applied: %s", cfg.Wallet.PrivateKey)
	}
}

func TestValidate_RejectsPlaceholderCredentials(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg = validConfig()
	cfg.Wallet.PrivateKey = "YOUR_PRIVATE_KEY"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for placeholder private key")
	}

	cfg = validConfig()
	cfg.Wallet.PrivateKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty private key")
	}

	cfg = validConfig()
	cfg.Wallet.FunderAddress = "YOUR_FUNDER_ADDRESS"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for placeholder funder")
	}

	cfg = validConfig()
	cfg.Market.TokenID = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty token id")
	}
}

func TestValidate_OrderSizeVsCeiling(t *testing.T) {
	cfg := validConfig()
	cfg.Session.OrderSize = 25.0
	cfg.Session.SpendCeiling = 20.0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error when order size exceeds ceiling")
	}
}
