// Package config resolves client settings from defaults, an optional
// config file under the app directory, flags, and ROOMSHARE_* environment
// variables, in rising priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"

	// DefaultChainID is Sepolia, where the contract lives.
	DefaultChainID = 11155111

	// DefaultContractAddress is the deployed RoomShare contract.
	DefaultContractAddress = "0x4147248382B8Dc4FB4269Ab7C57C24e3E2E38260"
)

// Config is the fully resolved client configuration.
type Config struct {
	RPCURL          string `mapstructure:"rpc_url"`
	ChainID         uint64 `mapstructure:"chain_id"`
	ContractAddress string `mapstructure:"contract_address"`
	ABIPath         string `mapstructure:"abi_path"`
	KeystoreDir     string `mapstructure:"keystore_dir"`
	GasLimit        uint64 `mapstructure:"gas_limit"`
	ExplorerURL     string `mapstructure:"explorer_url"`
	LogFile         string `mapstructure:"log_file"`
	LogLevel        string `mapstructure:"log_level"`
}

// Contract returns the parsed contract address.
func (c Config) Contract() (common.Address, error) {
	if !common.IsHexAddress(c.ContractAddress) {
		return common.Address{}, fmt.Errorf("config: %q is not a hex address", c.ContractAddress)
	}
	return common.HexToAddress(c.ContractAddress), nil
}

// AppDir returns the per-user application directory (~/.roomshare).
func AppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	return filepath.Join(home, ".roomshare"), nil
}

// New builds a viper instance carrying the defaults and env bindings.
// Flags can be bound onto it before Load is called.
func New(appDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(appDir)
	v.SetEnvPrefix("ROOMSHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("rpc_url", "http://localhost:8545")
	v.SetDefault("chain_id", DefaultChainID)
	v.SetDefault("contract_address", DefaultContractAddress)
	v.SetDefault("abi_path", "")
	v.SetDefault("keystore_dir", filepath.Join(appDir, "keystore"))
	v.SetDefault("gas_limit", 3_000_000)
	v.SetDefault("explorer_url", "https://sepolia.etherscan.io")
	v.SetDefault("log_file", filepath.Join(appDir, "roomshare.log"))
	v.SetDefault("log_level", "info")

	return v
}

// Load reads the optional config file and resolves the final Config.
// A missing file is fine; a malformed one is not.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if _, err := cfg.Contract(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
