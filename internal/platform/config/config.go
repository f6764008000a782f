package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Discovery modes.
const (
	DiscoveryStatic = "static"
	DiscoveryRedis  = "redis"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string
	Timeout     time.Duration
}

// Instance describes how this service registers itself with the registry.
type Instance struct {
	ServiceName  string
	InstanceID   string
	AdvertiseURL string
}

// Discovery selects how logical service names are resolved.
type Discovery struct {
	Mode              string
	StaticTargets     string // cards=http://h1:9000,http://h2:9000;loans=http://h3:8090
	HeartbeatInterval time.Duration
	InstanceTTL       time.Duration
}

// RedisConfig configures the registry connection when Discovery.Mode is "redis".
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Clients configures outbound calls to cards and loans.
type Clients struct {
	Timeout time.Duration
}

// Config is the full accounts service configuration.
type Config struct {
	Server    Server
	Instance  Instance
	Discovery Discovery
	Redis     RedisConfig
	Clients   Clients
}

// FromEnv builds a Config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server: Server{
			Addr:        getEnv("ACCOUNTS_ADDR", ":8080"),
			Environment: getEnv("APP_ENV", "local"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Timeout:     getDuration("HTTP_HANDLER_TIMEOUT", 30*time.Second),
		},
		Instance: Instance{
			ServiceName:  getEnv("SERVICE_NAME", "accounts"),
			InstanceID:   getEnv("INSTANCE_ID", "accounts-"+uuid.NewString()[:8]),
			AdvertiseURL: getEnv("ADVERTISE_URL", "http://localhost:8080"),
		},
		Discovery: Discovery{
			Mode:              getEnv("DISCOVERY_MODE", DiscoveryStatic),
			StaticTargets:     getEnv("DISCOVERY_STATIC_TARGETS", "cards=http://localhost:9000;loans=http://localhost:8090"),
			HeartbeatInterval: getDuration("DISCOVERY_HEARTBEAT_INTERVAL", 10*time.Second),
			InstanceTTL:       getDuration("DISCOVERY_INSTANCE_TTL", 30*time.Second),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", "redis://localhost:6379/0"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Clients: Clients{
			Timeout: getDuration("DOWNSTREAM_TIMEOUT", 5*time.Second),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Discovery.Mode {
	case DiscoveryStatic:
		if c.Discovery.StaticTargets == "" {
			return fmt.Errorf("DISCOVERY_STATIC_TARGETS is required in static discovery mode")
		}
	case DiscoveryRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required in redis discovery mode")
		}
		if c.Discovery.HeartbeatInterval <= 0 {
			return fmt.Errorf("DISCOVERY_HEARTBEAT_INTERVAL must be positive")
		}
		if c.Discovery.InstanceTTL <= c.Discovery.HeartbeatInterval {
			return fmt.Errorf("DISCOVERY_INSTANCE_TTL (%s) must exceed DISCOVERY_HEARTBEAT_INTERVAL (%s)",
				c.Discovery.InstanceTTL, c.Discovery.HeartbeatInterval)
		}
	default:
		return fmt.Errorf("unknown DISCOVERY_MODE %q", c.Discovery.Mode)
	}
	if c.Clients.Timeout <= 0 {
		return fmt.Errorf("DOWNSTREAM_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
