package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type HTTPCfg struct {
	Addr            string        `env:"LEDGER_HTTP_ADDR" envDefault:":3000"`
	ShutdownTimeout time.Duration `env:"LEDGER_HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type LogCfg struct {
	Level  string `env:"LEDGER_LOG_LEVEL" envDefault:"info"`
	Format string `env:"LEDGER_LOG_FORMAT" envDefault:"text"`
}

type StorageCfg struct {
	Backend         string        `env:"LEDGER_STORAGE_BACKEND" envDefault:"file"`
	Slot            string        `env:"LEDGER_STORAGE_SLOT" envDefault:"customer-payment-dashboard"`
	Codec           string        `env:"LEDGER_STORAGE_CODEC" envDefault:"json"`
	Dir             string        `env:"LEDGER_STORAGE_DIR" envDefault:"./data"`
	ListLatency     time.Duration `env:"LEDGER_STORAGE_LIST_LATENCY" envDefault:"300ms"`
	MutationLatency time.Duration `env:"LEDGER_STORAGE_MUTATION_LATENCY" envDefault:"200ms"`
	ConnectTimeout  time.Duration `env:"LEDGER_STORAGE_CONNECT_TIMEOUT" envDefault:"5s"`
}

type RedisCfg struct {
	Addr     string `env:"LEDGER_REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"LEDGER_REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"LEDGER_REDIS_DB" envDefault:"0"`
}

type PostgresCfg struct {
	User        string `env:"LEDGER_POSTGRES_USER" envDefault:"postgres"`
	Password    string `env:"LEDGER_POSTGRES_PASSWORD" envDefault:""`
	Host        string `env:"LEDGER_POSTGRES_HOST" envDefault:"localhost"`
	Port        int    `env:"LEDGER_POSTGRES_PORT" envDefault:"5432"`
	Database    string `env:"LEDGER_POSTGRES_DB" envDefault:"ledger"`
	SslMode     string `env:"LEDGER_POSTGRES_SSL_MODE" envDefault:"disable"`
	PoolMaxConn int    `env:"LEDGER_POSTGRES_POOL_MAX_CONN" envDefault:"10"`
}

// DSN builds postgres URL, credentials are escaped so empty or spaced values stay intact
func (c PostgresCfg) DSN() string {
	query := url.Values{}
	query.Set("sslmode", c.SslMode)
	query.Set("pool_max_conns", strconv.Itoa(c.PoolMaxConn))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: query.Encode(),
	}
	return u.String()
}

type MongoCfg struct {
	User        string `env:"LEDGER_MONGO_USER" envDefault:""`
	Password    string `env:"LEDGER_MONGO_PASSWORD" envDefault:""`
	Host        string `env:"LEDGER_MONGO_HOST" envDefault:"localhost"`
	Port        int    `env:"LEDGER_MONGO_PORT" envDefault:"27017"`
	Database    string `env:"LEDGER_MONGO_DB" envDefault:""`
	MaxPoolSize int    `env:"LEDGER_MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

func (c MongoCfg) URI() string {
	if c.User == "" {
		return fmt.Sprintf("mongodb://%s:%d/?maxPoolSize=%d", c.Host, c.Port, c.MaxPoolSize)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d/?maxPoolSize=%d", c.User, c.Password, c.Host, c.Port, c.MaxPoolSize)
}

type Config struct {
	HTTPCfg     HTTPCfg
	LogCfg      LogCfg
	StorageCfg  StorageCfg
	RedisCfg    RedisCfg
	PostgresCfg PostgresCfg
	MongoCfg    MongoCfg
}

func Build() (Config, error) {
	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	switch cfg.StorageCfg.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendPostgres, BackendMongo:
	default:
		return cfg, fmt.Errorf("unsupported storage backend %q", cfg.StorageCfg.Backend)
	}

	if cfg.StorageCfg.ListLatency < 0 || cfg.StorageCfg.MutationLatency < 0 {
		return cfg, fmt.Errorf("storage latency can't be negative")
	}
	return cfg, nil
}
