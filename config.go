package stellarsdk

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/stellar/go/network"

	"github.com/lumengive/stellar-sdk/types"
)

const (
	NetworkTestnet   = "testnet"
	NetworkFuturenet = "futurenet"
	NetworkPublic    = "public"
)

const (
	defaultFundingRetryDelay = 2 * time.Second
	defaultMaxRetainedTxs    = 500
)

type networkDefaults struct {
	horizonURL string
	faucetURL  string
	passphrase string
}

var defaultNetworks = map[string]networkDefaults{
	NetworkTestnet: {
		horizonURL: "https://horizon-testnet.stellar.org",
		faucetURL:  "https://friendbot.stellar.org",
		passphrase: network.TestNetworkPassphrase,
	},
	NetworkFuturenet: {
		horizonURL: "https://horizon-futurenet.stellar.org",
		faucetURL:  "https://friendbot-futurenet.stellar.org",
		passphrase: network.FutureNetworkPassphrase,
	},
	NetworkPublic: {
		horizonURL: "https://horizon.stellar.org",
		passphrase: network.PublicNetworkPassphrase,
	},
}

type fileConfig struct {
	Network           string        `mapstructure:"network"`
	HorizonURL        string        `mapstructure:"horizon_url"`
	FaucetURL         string        `mapstructure:"faucet_url"`
	ConfigStoreType   string        `mapstructure:"config_store_type"`
	AppDataStoreType  string        `mapstructure:"app_data_store_type"`
	BaseDir           string        `mapstructure:"base_dir"`
	FundingRetryDelay time.Duration `mapstructure:"funding_retry_delay"`
	MaxRetainedTxs    int           `mapstructure:"max_retained_txs"`
}

// LoadConfig reads a YAML config file, with environment variables taking
// precedence over file values (e.g. HORIZON_URL overrides horizon_url).
func LoadConfig(path string) (*types.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv only covers keys viper already knows about, so every
	// config key is bound explicitly or an env var for a key absent from
	// the file would be ignored.
	for _, key := range []string{
		"network", "horizon_url", "faucet_url", "config_store_type",
		"app_data_store_type", "base_dir", "funding_retry_delay",
		"max_retained_txs",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("network", NetworkTestnet)
	v.SetDefault("config_store_type", types.InMemoryStore)
	v.SetDefault("app_data_store_type", types.InMemoryStore)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, err
	}

	cfg := &types.Config{
		Network:           fc.Network,
		HorizonURL:        fc.HorizonURL,
		FaucetURL:         fc.FaucetURL,
		ConfigStoreType:   fc.ConfigStoreType,
		AppDataStoreType:  fc.AppDataStoreType,
		BaseDir:           fc.BaseDir,
		FundingRetryDelay: fc.FundingRetryDelay,
		MaxRetainedTxs:    fc.MaxRetainedTxs,
	}
	if err := applyConfigDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyConfigDefaults(cfg *types.Config) error {
	if len(cfg.Network) <= 0 {
		cfg.Network = NetworkTestnet
	}
	defaults, ok := defaultNetworks[cfg.Network]
	if !ok {
		return fmt.Errorf("unknown network %q", cfg.Network)
	}

	if len(cfg.NetworkPassphrase) <= 0 {
		cfg.NetworkPassphrase = defaults.passphrase
	}
	if len(cfg.HorizonURL) <= 0 {
		cfg.HorizonURL = defaults.horizonURL
	}
	if len(cfg.FaucetURL) <= 0 {
		cfg.FaucetURL = defaults.faucetURL
	}
	if len(cfg.ConfigStoreType) <= 0 {
		cfg.ConfigStoreType = types.InMemoryStore
	}
	if len(cfg.AppDataStoreType) <= 0 {
		cfg.AppDataStoreType = types.InMemoryStore
	}
	if cfg.FundingRetryDelay <= 0 {
		cfg.FundingRetryDelay = defaultFundingRetryDelay
	}
	if cfg.MaxRetainedTxs <= 0 {
		cfg.MaxRetainedTxs = defaultMaxRetainedTxs
	}
	return nil
}
