package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds every knob the app reads at startup.
// Values come from defaults < config/.env.<env> < environment variables (prefixed with <ENV>_).
type Config struct {
	Debug     bool
	TestMode  bool
	Env       string
	AppName   string
	SecretKey string

	Server struct {
		Addr            string
		ShutdownTimeout time.Duration
	}

	// Storage selects the journal repository: "memory" (seeded fixture) or "postgres".
	Storage     string
	DatabaseURL string

	// Identity selects the durable identity side-channel: "file" or "redis".
	Identity struct {
		Backend  string
		Path     string
		RedisURL string
	}

	Rollbar struct {
		Token string
	}
}

// NewConfig loads the configuration for the current ENV (DEV when unset).
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Shajara")
	v.SetDefault("secretKey", "x9mw-bhq)ktj$+24=rf&yenz5(p!c)#*g7(#vd1u^$qslt8abe")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.shutdownTimeout", 20*time.Second)
	v.SetDefault("storage", "memory")
	v.SetDefault("databaseURL", "")
	v.SetDefault("identity.backend", "file")
	v.SetDefault("identity.path", filepath.Join(".", "run", "identity"))
	v.SetDefault("identity.redisURL", "redis://localhost:6379/0")
	v.SetDefault("rollbar.token", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetDefault("env", env)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return conf, nil
}
