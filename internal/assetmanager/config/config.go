package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"asset-manager/internal/shared/database"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

const (
	StoreMongoDB = "mongodb"
	StoreMemory  = "memory"
)

// RedisConfig holds the out topic event persistence settings.
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	// StreamMaxLength caps each server's event stream, approximately.
	StreamMaxLength   int64         `env:"REDIS_STREAM_MAX_LENGTH" envDefault:"10000"`
	EventRetention    time.Duration `env:"OUT_TOPIC_EVENT_RETENTION" envDefault:"24h"`
	RetentionInterval time.Duration `env:"OUT_TOPIC_RETENTION_INTERVAL" envDefault:"10m"`
}

// ServerConfig describes one server instance.
type ServerConfig struct {
	Name string `yaml:"name"`
	// DatabaseName overrides the MongoDB database derived from the server name.
	DatabaseName string   `yaml:"databaseName,omitempty"`
	MaxPageSize  int      `yaml:"maxPageSize,omitempty"`
	DefaultZones []string `yaml:"defaultZones,omitempty"`
	PublishZones []string `yaml:"publishZones,omitempty"`
	// VisibilityPolicy is a CEL expression over userId, typeName, securityLabels and accessGroups.
	VisibilityPolicy string `yaml:"visibilityPolicy,omitempty"`
}

// serversFile is the layout of ASSET_MANAGER_SERVERS_FILE.
type serversFile struct {
	Servers []ServerConfig `yaml:"servers"`
}

// Config holds the configuration of the asset manager service.
type Config struct {
	Host string `env:"SERVER_HOST" envDefault:"localhost"`
	Port string `env:"SERVER_PORT" envDefault:"8080"`

	StoreType  string `env:"STORE_TYPE" envDefault:"memory"`
	MongoDBURI string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	Database   database.ServerDatabaseConfig

	Redis RedisConfig

	ServersFile string `env:"ASSET_MANAGER_SERVERS_FILE"`
	// ServerName names the single server run when there is no servers file.
	ServerName   string   `env:"ASSET_MANAGER_SERVER_NAME" envDefault:"cocoMDS1"`
	MaxPageSize  int      `env:"ASSET_MANAGER_MAX_PAGE_SIZE" envDefault:"1000"`
	DefaultZones []string `env:"ASSET_MANAGER_DEFAULT_ZONES" envDefault:"quarantine" envSeparator:","`
	PublishZones []string `env:"ASSET_MANAGER_PUBLISH_ZONES" envDefault:"data-lake" envSeparator:","`

	CORSAllowOrigins string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitMax     int           `env:"RATE_LIMIT_MAX" envDefault:"0"`
	RateLimitWindow  time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	Servers []ServerConfig `env:"-"`
}

// LoadConfig loads configuration from environment variables and the servers file.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load asset manager configuration from environment: " + err.Error())
	}

	if cfg.ServersFile != "" {
		servers, err := LoadServersFile(cfg.ServersFile)
		if err != nil {
			return nil, err
		}
		cfg.Servers = servers
	} else {
		cfg.Servers = []ServerConfig{{Name: cfg.ServerName}}
	}
	cfg.applyServerDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadServersFile reads the server instances from a YAML file.
func LoadServersFile(path string) ([]ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read servers file: %w", err)
	}
	var file serversFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse servers file %s: %w", path, err)
	}
	if len(file.Servers) == 0 {
		return nil, fmt.Errorf("servers file %s names no servers", path)
	}
	return file.Servers, nil
}

func (c *Config) applyServerDefaults() {
	for i := range c.Servers {
		s := &c.Servers[i]
		if s.MaxPageSize == 0 {
			s.MaxPageSize = c.MaxPageSize
		}
		if s.DefaultZones == nil {
			s.DefaultZones = c.DefaultZones
		}
		if s.PublishZones == nil {
			s.PublishZones = c.PublishZones
		}
	}
}

// Validate checks the store selection and the server list.
func (c *Config) Validate() error {
	switch c.StoreType {
	case StoreMongoDB:
		if c.MongoDBURI == "" {
			return errors.New("MONGODB_URI is required when STORE_TYPE is mongodb")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_TYPE %q, expected %s or %s", c.StoreType, StoreMongoDB, StoreMemory)
	}

	if len(c.Servers) == 0 {
		return errors.New("no server instances are configured")
	}
	seen := make(map[string]bool, len(c.Servers))
	for _, s := range c.Servers {
		if err := database.ValidateServerName(s.Name); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("server %s is configured twice", s.Name)
		}
		seen[s.Name] = true
		if s.MaxPageSize < 0 {
			return fmt.Errorf("server %s: maxPageSize cannot be negative", s.Name)
		}
	}
	return nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return c.Host + ":" + c.Port
}

// ServerNames lists the configured servers in file order.
func (c *Config) ServerNames() []string {
	names := make([]string, len(c.Servers))
	for i, s := range c.Servers {
		names[i] = s.Name
	}
	return names
}
