package config

import (
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const envPrefix = "STOREFRONT_"

type Config struct {
	Port     int
	LogLevel string

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Metrics struct {
		Enabled bool
		Token   string
	}

	Currency struct {
		Code       string
		Multiplier float64
	}

	RateLimit struct {
		Login    int
		Register int
		Window   time.Duration
	}

	Seed bool
}

// Defaults mirror the reference deployment: INR display prices at a fixed
// 83x multiplier and a 24h token window.
func Defaults() *Config {
	cfg := &Config{}
	cfg.Port = 3000
	cfg.LogLevel = "info"
	cfg.JWT.Secret = "ecommerce-secret-key"
	cfg.JWT.TTL = 24 * time.Hour
	cfg.Currency.Code = "INR"
	cfg.Currency.Multiplier = 83
	cfg.RateLimit.Login = 5
	cfg.RateLimit.Register = 3
	cfg.RateLimit.Window = time.Minute
	cfg.Seed = true
	return cfg
}

// Load reads STOREFRONT_* environment variables over the defaults.
// STOREFRONT_JWT_SECRET becomes jwt.secret, STOREFRONT_PORT becomes port.
func Load() (*Config, error) {
	cfg := Defaults()
	k := koanf.New(".")

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			key = strings.ReplaceAll(key, "_", ".")
			return key, value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	return cfg, nil
}
