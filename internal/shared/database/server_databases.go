package database

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"asset-manager/internal/shared/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// InitFunc prepares a freshly opened server database (collections, indexes).
type InitFunc func(ctx context.Context, db *mongo.Database) error

// ServerDatabaseManager hands out one MongoDB database per server instance so that
// the metadata of each server is isolated.
type ServerDatabaseManager struct {
	client    *mongo.Client
	databases map[string]*mongo.Database // serverName -> database
	mu        sync.RWMutex
	logger    logger.Logger
	config    *ServerDatabaseConfig
	init      InitFunc
}

// ServerDatabaseConfig holds configuration for server database management
type ServerDatabaseConfig struct {
	DatabasePrefix string `env:"MONGODB_DATABASE_PREFIX" envDefault:"asset_manager_"`
	// InitializeOnOpen runs the InitFunc the first time a server database is used.
	InitializeOnOpen bool `env:"MONGODB_INIT_ON_OPEN" envDefault:"true"`
}

// NewServerDatabaseManager creates a new manager
func NewServerDatabaseManager(client *mongo.Client, config *ServerDatabaseConfig, init InitFunc, log logger.Logger) *ServerDatabaseManager {
	if config == nil {
		config = &ServerDatabaseConfig{
			DatabasePrefix:   "asset_manager_",
			InitializeOnOpen: true,
		}
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ServerDatabaseManager{
		client:    client,
		databases: make(map[string]*mongo.Database),
		logger:    log,
		config:    config,
		init:      init,
	}
}

// DatabaseFor returns the database for a server. databaseName overrides the derived
// name when the server configuration names one explicitly.
func (m *ServerDatabaseManager) DatabaseFor(ctx context.Context, serverName, databaseName string) (*mongo.Database, error) {
	if err := ValidateServerName(serverName); err != nil {
		return nil, err
	}

	m.mu.RLock()
	if db, exists := m.databases[serverName]; exists {
		m.mu.RUnlock()
		return db, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if db, exists := m.databases[serverName]; exists {
		return db, nil
	}

	if databaseName == "" {
		databaseName = m.DatabaseName(serverName)
	}
	db := m.client.Database(databaseName)

	if m.config.InitializeOnOpen && m.init != nil {
		if err := m.init(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to initialize database %s: %w", databaseName, err)
		}
	}

	m.databases[serverName] = db

	m.logger.WithFields(map[string]interface{}{
		"server_name":   serverName,
		"database_name": databaseName,
	}).Info("Opened metadata database for server")

	return db, nil
}

// DatabaseName derives the database name used for a server.
func (m *ServerDatabaseManager) DatabaseName(serverName string) string {
	sanitized := strings.ToLower(serverName)
	sanitized = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(sanitized)
	return m.config.DatabasePrefix + sanitized
}

// Ping checks the underlying client.
func (m *ServerDatabaseManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close forgets all open databases; the client is owned by the caller.
func (m *ServerDatabaseManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.databases = make(map[string]*mongo.Database)
	m.logger.Info("Closed all server database handles")
	return nil
}

// OpenCount returns the number of databases opened so far.
func (m *ServerDatabaseManager) OpenCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.databases)
}

// ValidateServerName validates a server instance name
func ValidateServerName(serverName string) error {
	if serverName == "" {
		return fmt.Errorf("server name cannot be empty")
	}
	if len(serverName) > 64 {
		return fmt.Errorf("server name too long (max 64 characters)")
	}
	for _, char := range serverName {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '-' || char == '_' || char == '.') {
			return fmt.Errorf("server name contains invalid characters")
		}
	}
	return nil
}
