package config

import (
	"log"
	"strings"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Safe     SafeConfig     `mapstructure:"safe"`
	Token    TokenConfig    `mapstructure:"token"`
	Eth      EthConfig      `mapstructure:"eth"`
	Delegate DelegateConfig `mapstructure:"delegate"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	DB       DBConfig       `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type SafeConfig struct {
	Address          string `mapstructure:"address"`
	MultiSendAddress string `mapstructure:"multisend_address"`
	TxServiceURL     string `mapstructure:"tx_service_url"`
	RelayServiceURL  string `mapstructure:"relay_service_url"`
	Origin           string `mapstructure:"origin"`
}

// RelayURL returns the relay estimation endpoint base. When not configured it
// is derived from the transaction service host, matching the Gnosis naming
// scheme (safe-transaction -> safe-relay).
func (c SafeConfig) RelayURL() string {
	if c.RelayServiceURL != "" {
		return c.RelayServiceURL
	}
	return strings.Replace(c.TxServiceURL, "safe-transaction", "safe-relay", 1)
}

type TokenConfig struct {
	Address  string `mapstructure:"address"`
	GeckoID  string `mapstructure:"gecko_id"`
	Decimals int32  `mapstructure:"decimals"`
}

type EthConfig struct {
	RpcURL string `mapstructure:"rpc_url"`
}

type DelegateConfig struct {
	PrivateKey       string `mapstructure:"private_key"`       // raw hex key, usually via SAFE_DELEGATE_PRIVATE_KEY
	Mnemonic         string `mapstructure:"mnemonic"`          // BIP-39 alternative to a raw key
	DerivationPath   string `mapstructure:"derivation_path"`   // used with mnemonic or keystore-held mnemonics
	KeystorePath     string `mapstructure:"keystore_path"`     // encrypted secret on disk
	KeystorePassword string `mapstructure:"keystore_password"` // usually via SAFE_KEYSTORE_PASSWORD
}

type PricingConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	VsCurrency string `mapstructure:"vs_currency"`
}

type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

var Global Config

func Init() {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath(".")      // optionally look for config in the working directory
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The two env vars the CI pipeline has always used keep their names.
	_ = viper.BindEnv("delegate.private_key", "SAFE_DELEGATE_PRIVATE_KEY")
	_ = viper.BindEnv("delegate.mnemonic", "SAFE_DELEGATE_MNEMONIC")
	_ = viper.BindEnv("delegate.keystore_password", "SAFE_KEYSTORE_PASSWORD")
	_ = viper.BindEnv("eth.rpc_url", "ETH_RPC")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

// RequireRun validates everything a signing run cannot start without.
func (c *Config) RequireRun() error {
	if c.Eth.RpcURL == "" {
		return errno.ErrConfig.WithDetail("ETH_RPC undefined")
	}
	if c.Delegate.PrivateKey == "" && c.Delegate.Mnemonic == "" && c.Delegate.KeystorePath == "" {
		return errno.ErrConfig.WithDetail("SAFE_DELEGATE_PRIVATE_KEY undefined (no mnemonic or keystore configured either)")
	}
	if c.Safe.Address == "" || c.Safe.MultiSendAddress == "" {
		return errno.ErrConfig.WithDetail("safe.address and safe.multisend_address are required")
	}
	if c.Token.Address == "" || c.Token.GeckoID == "" {
		return errno.ErrConfig.WithDetail("token.address and token.gecko_id are required")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("safe.address", "0xb04E030140b30C27bcdfaafFFA98C57d80eDa7B4")
	viper.SetDefault("safe.multisend_address", "0x40A2aCCbd92BCA938b02010E17A5b8929b49130D")
	viper.SetDefault("safe.tx_service_url", "https://safe-transaction.mainnet.gnosis.io")
	viper.SetDefault("safe.origin", "CI proposal transaction")

	viper.SetDefault("token.address", "0x77777FeDdddFfC19Ff86DB637967013e6C6A116C")
	viper.SetDefault("token.gecko_id", "tornado-cash")
	viper.SetDefault("token.decimals", 18)

	viper.SetDefault("delegate.derivation_path", "m/44'/60'/0'/0/0")

	viper.SetDefault("pricing.base_url", "https://api.coingecko.com/api/v3")
	viper.SetDefault("pricing.vs_currency", "usd")

	viper.SetDefault("db.enabled", false)
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "proposer_user")
	viper.SetDefault("db.password", "proposer_password")
	viper.SetDefault("db.name", "proposer_db")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topic", "safe.proposals")

	viper.SetDefault("metrics.job", "salary-proposer")
}
