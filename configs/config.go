package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Rabbit struct {
		URL        string `koanf:"url"`
		Exchange   string `koanf:"exchange"`
		RoutingKey string `koanf:"routing_key"`
	} `koanf:"rabbitmq"`

	Gemini struct {
		APIKey  string `koanf:"api_key"`
		BaseURL string `koanf:"base_url"`
		Model   string `koanf:"model"`
	} `koanf:"gemini"`

	Sheets struct {
		ScriptURL string `koanf:"script_url"`
	} `koanf:"sheets"`

	Checkout struct {
		Timeout     time.Duration `koanf:"timeout"`
		ShippingFee int64         `koanf:"shipping_fee"`
		AttemptTTL  time.Duration `koanf:"attempt_ttl"`
	} `koanf:"checkout"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env overlay (dev/staging/prod). Optional for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix FOODAPI_, nested with __)
	// e.g. FOODAPI_REDIS__ADDR, FOODAPI_GEMINI__API_KEY
	if err := k.Load(env.Provider("FOODAPI_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "FOODAPI_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.LogFile == "" {
		c.App.LogFile = "./logs/app.log"
	}
	if c.Checkout.Timeout <= 0 {
		c.Checkout.Timeout = 15 * time.Second
	}
	if c.Checkout.ShippingFee <= 0 {
		c.Checkout.ShippingFee = 30
	}
	if c.Checkout.AttemptTTL <= 0 {
		// must outlive both remote call budgets so the lock expires on its own
		// if the process dies mid-attempt
		c.Checkout.AttemptTTL = 2*c.Checkout.Timeout + 5*time.Second
	}
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr required")
	}
	return nil
}
