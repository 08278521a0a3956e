package di

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	amhttp "asset-manager/internal/assetmanager/adapter/http"
	"asset-manager/internal/assetmanager/adapter/persistence"
	"asset-manager/internal/assetmanager/adapter/persistence/memory"
	"asset-manager/internal/assetmanager/adapter/persistence/mongodb"
	"asset-manager/internal/assetmanager/config"
	"asset-manager/internal/assetmanager/domain/repository"
	"asset-manager/internal/assetmanager/usecase"
	"asset-manager/internal/auth"
	authconfig "asset-manager/internal/auth/config"
	"asset-manager/internal/shared/database"
	"asset-manager/internal/shared/eventbus"
	"asset-manager/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Container wires the asset manager server instances and their dependencies.
type Container struct {
	mu       sync.RWMutex
	services map[reflect.Type]interface{}

	Config     *config.Config
	AuthConfig *authconfig.Config
	Logger     logger.Logger

	// Storage
	MongoClient *mongo.Client
	Databases   *database.ServerDatabaseManager
	Redis       *redis.Client

	// Events
	EventBus   *eventbus.EventBus
	EventStore repository.EventStore
	OutTopic   *usecase.OutTopic

	Servers    *usecase.ServerInstances
	AuthModule *auth.AuthModule
}

// NewContainer creates an empty container. Call Initialize before use.
func NewContainer(cfg *config.Config, authCfg *authconfig.Config, log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{
		services:   make(map[reflect.Type]interface{}),
		Config:     cfg,
		AuthConfig: authCfg,
		Logger:     log,
	}
}

// Initialize connects the stores and builds every configured server instance.
func (c *Container) Initialize(ctx context.Context) error {
	if err := c.InitializeStorage(ctx); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := c.InitializeEvents(ctx); err != nil {
		return fmt.Errorf("failed to initialize events: %w", err)
	}
	if err := c.InitializeServers(ctx); err != nil {
		return fmt.Errorf("failed to initialize servers: %w", err)
	}
	if err := c.InitializeAuth(); err != nil {
		return fmt.Errorf("failed to initialize auth: %w", err)
	}
	return nil
}

// InitializeStorage connects to MongoDB when it is the configured store.
func (c *Container) InitializeStorage(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Config.StoreType != config.StoreMongoDB {
		c.Logger.Info("Using in-memory metadata store")
		return nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.Config.MongoDBURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	c.MongoClient = client
	c.Databases = database.NewServerDatabaseManager(client, &c.Config.Database, mongodb.EnsureIndexes, c.Logger)
	c.Logger.Info("MongoDB connection established successfully")
	return nil
}

// InitializeEvents creates the event bus and the out topic. Events are persisted to
// Redis streams when Redis is enabled.
func (c *Container) InitializeEvents(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.EventBus = eventbus.NewEventBus(c.Logger)

	if c.Config.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return fmt.Errorf("failed to ping Redis: %w", err)
		}
		c.Redis = client
		c.EventStore = persistence.NewRedisEventStore(client, c.Config.Redis.StreamMaxLength, c.Logger)
		c.Logger.Info("Redis event store connected")
	}

	c.OutTopic = usecase.NewOutTopic(c.EventBus, c.EventStore, c.Logger)
	return nil
}

// InitializeServers builds one server instance per configured server.
func (c *Container) InitializeServers(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	servers := usecase.NewServerInstances()
	for _, server := range c.Config.Servers {
		store, err := c.storeFor(ctx, server)
		if err != nil {
			return fmt.Errorf("server %s: %w", server.Name, err)
		}

		var policy *usecase.VisibilityPolicy
		if server.VisibilityPolicy != "" {
			if policy, err = usecase.NewVisibilityPolicy(server.VisibilityPolicy); err != nil {
				return fmt.Errorf("server %s: %w", server.Name, err)
			}
		}

		handler := usecase.NewMetadataHandler(usecase.HandlerConfig{
			ServerName:   server.Name,
			MaxPageSize:  server.MaxPageSize,
			DefaultZones: server.DefaultZones,
			PublishZones: server.PublishZones,
			Policy:       policy,
		}, store, c.EventBus, c.Logger)
		servers.Register(usecase.NewServerInstance(handler))

		c.Logger.WithFields(map[string]interface{}{
			"server_name": server.Name,
			"store":       c.Config.StoreType,
		}).Info("Server instance registered")
	}

	c.Servers = servers
	c.services[reflect.TypeOf(servers)] = servers
	return nil
}

func (c *Container) storeFor(ctx context.Context, server config.ServerConfig) (repository.MetadataStore, error) {
	if c.Databases == nil {
		return memory.NewMetadataStore(), nil
	}
	db, err := c.Databases.DatabaseFor(ctx, server.Name, server.DatabaseName)
	if err != nil {
		return nil, err
	}
	return mongodb.NewMetadataStore(db, c.Logger), nil
}

// InitializeAuth builds the auth module. A nil auth configuration disables auth.
func (c *Container) InitializeAuth() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.AuthConfig == nil {
		c.AuthConfig = &authconfig.Config{}
	}
	authModule, err := auth.NewAuthModule(c.AuthConfig)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	c.AuthModule = authModule
	c.services[reflect.TypeOf(authModule)] = authModule
	return nil
}

// Register registers a service instance under its concrete type.
func (c *Container) Register(service interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[reflect.TypeOf(service)] = service
}

// GetService resolves a registered service by type.
func GetService[T any](c *Container) (T, error) {
	var zero T
	c.mu.RLock()
	defer c.mu.RUnlock()

	service, ok := c.services[reflect.TypeOf(zero)]
	if !ok {
		return zero, fmt.Errorf("service of type %T not registered", zero)
	}
	typed, ok := service.(T)
	if !ok {
		return zero, fmt.Errorf("service is not of expected type %T", zero)
	}
	return typed, nil
}

// HealthChecks lists the dependencies reported by the health endpoint.
func (c *Container) HealthChecks() []amhttp.HealthCheck {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var checks []amhttp.HealthCheck
	if c.Servers != nil {
		checks = append(checks, amhttp.HealthCheck{Name: "servers", Target: c.Servers})
	}
	if c.OutTopic != nil {
		checks = append(checks, amhttp.HealthCheck{Name: "outTopic", Target: c.OutTopic})
	}
	return checks
}

// HealthCheck pings every dependency and returns the first failure.
func (c *Container) HealthCheck(ctx context.Context) error {
	for _, check := range c.HealthChecks() {
		if err := check.Target.Ping(ctx); err != nil {
			return fmt.Errorf("%s health check failed: %w", check.Name, err)
		}
	}
	return nil
}

// Cleanup releases connections in reverse order of initialization.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
		c.Redis = nil
	}
	if c.Databases != nil {
		if err := c.Databases.Close(); err != nil {
			errs = append(errs, err)
		}
		c.Databases = nil
	}
	if c.MongoClient != nil {
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to disconnect MongoDB: %w", err))
		}
		c.MongoClient = nil
	}
	c.services = make(map[reflect.Type]interface{})

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// Close gracefully shuts down all services in the container with timeout
func (c *Container) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("Cleanup errors occurred: %v", err)
		return err
	}
	c.Logger.Info("Container resources closed")
	return nil
}
