package bootstrap

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/market/base/database/mongoclient"
	"github.com/x-xyz/market/base/database/redisclient"
	"github.com/x-xyz/market/base/env"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/service/chain"
	"github.com/x-xyz/market/service/notifier/discord"
	"github.com/x-xyz/market/service/notifier/webhook"
	market_usecase "github.com/x-xyz/market/stores/market/usecase"
)

const (
	DefaultConfigFile = "infra/configs/config.yaml"
	DefaultEnvFile    = ".env"
)

type MongoCfg struct {
	mongoclient.Config `mapstructure:",squash"`
	Enabled            bool `mapstructure:"enabled"`
	CheckIndex         bool `mapstructure:"checkIndex"`
	Transactions       bool `mapstructure:"transactions"`
}

type RedisCfg struct {
	redisclient.Config `mapstructure:",squash"`
	Enabled            bool   `mapstructure:"enabled"`
	Name               string `mapstructure:"name"`
	// LocalCacheMB sizes the in-process layer in front of redis.
	LocalCacheMB int `mapstructure:"localCacheMB"`
}

type ChainCfg struct {
	chain.ClientCfg `mapstructure:",squash"`
	// Simulated runs every market against in-memory contracts; Custodian names the
	// escrow account there.
	Simulated bool           `mapstructure:"simulated"`
	Custodian domain.Address `mapstructure:"custodian"`
}

type AuthCfg struct {
	JwtSecret    string        `mapstructure:"jwtSecret"`
	SignatureMsg string        `mapstructure:"signatureMsg"`
	TokenTTL     time.Duration `mapstructure:"tokenTTL"`
	NonceWindow  time.Duration `mapstructure:"nonceWindow"`
}

type NotifierCfg struct {
	Workers  int              `mapstructure:"workers"`
	Discord  discord.Config   `mapstructure:"discord"`
	Webhooks []webhook.Config `mapstructure:"webhooks"`
}

type ServerCfg struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	HealthTimeout   time.Duration `mapstructure:"healthTimeout"`
	// CacheEvents puts the event feed behind the read cache.
	CacheEvents bool `mapstructure:"cacheEvents"`
}

type Config struct {
	Debug    bool                    `mapstructure:"debug"`
	LogLevel string                  `mapstructure:"logLevel"`
	Server   ServerCfg               `mapstructure:"server"`
	Mongo    MongoCfg                `mapstructure:"mongo"`
	Redis    RedisCfg                `mapstructure:"redis"`
	Chain    ChainCfg                `mapstructure:"chain"`
	Auth     AuthCfg                 `mapstructure:"auth"`
	Admins   domain.Addresses        `mapstructure:"admins"`
	Notifier NotifierCfg             `mapstructure:"notifier"`
	Markets  []market_usecase.Config `mapstructure:"markets"`
}

// Options are the command line inputs of every binary.
type Options struct {
	ConfigFile string
	EnvFile    string
	// LogLevel overrides logLevel when set.
	LogLevel string
}

// BindFlags registers Options on fs.
func BindFlags(fs *pflag.FlagSet, opts *Options) {
	fs.StringVar(&opts.ConfigFile, "config", DefaultConfigFile, "path of the yaml config")
	fs.StringVar(&opts.EnvFile, "env-file", DefaultEnvFile, "KEY=VALUE file loaded before the config")
	fs.StringVar(&opts.LogLevel, "log-level", "", "overrides logLevel")
}

// Load reads the env file, then the yaml config, with MARKET_* variables taking
// precedence, e.g. MARKET_MONGO_URI for mongo.uri.
func Load(opts Options) (*Config, error) {
	if err := env.Load(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(opts.ConfigFile)
	v.SetEnvPrefix("market")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("logLevel", "info")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("auth.signatureMsg", "Sign in to the market, nonce: %d")
	v.SetDefault("notifier.workers", 8)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		v.Set("logLevel", opts.LogLevel)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "level": cfg.LogLevel}).Warn("unknown log level")
	}
	if cfg.Debug {
		log.Log().Info("Service RUN on DEBUG mode")
	}
	return cfg, nil
}
