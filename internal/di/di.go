// Package di assembles repositories, identity provider, event publisher and services
// from the process configuration.
package di

import (
	"context"

	"stagestyle/internal/authz"
	"stagestyle/internal/config"
	"stagestyle/internal/identity"
	"stagestyle/internal/repositories"
	"stagestyle/internal/services"
	"stagestyle/pkg/rabbitmq"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Container holds every long lived dependency of the process.
type Container struct {
	Config *config.Config

	// DB is set for the SQL storage drivers only.
	DB          *gorm.DB
	Products    repositories.ProductRepository
	Orders      repositories.OrderRepository
	Users       repositories.UserRepository
	Credentials repositories.CredentialRepository

	Provider identity.Provider
	// Local is set when the built-in identity provider is active.
	Local *identity.LocalProvider

	// Events is nil when RABBITMQ_URL is empty or the broker is unreachable.
	Events *rabbitmq.Client

	ProductService *services.ProductService
	OrderService   *services.OrderService
	UserService    *services.UserService
	Guard          *authz.Guard

	closers []func() error
}

// Build wires a Container for cfg. Call Close when done.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	var fbApp *firebase.App
	if cfg.UsesFirebase() {
		app, err := ProvideFirebaseApp(ctx, cfg)
		if err != nil {
			return nil, err
		}
		fbApp = app
	}

	if err := c.provideStorage(ctx, fbApp); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.provideIdentity(ctx, fbApp); err != nil {
		c.Close()
		return nil, err
	}
	c.provideEvents()

	var publisher services.OrderEventPublisher
	if c.Events != nil {
		publisher = c.Events
	}
	c.ProductService = services.NewProductService(c.Products)
	c.OrderService = services.NewOrderService(c.Orders, publisher)
	c.UserService = services.NewUserService(c.Users, c.Provider)
	c.Guard = authz.NewGuard(c.Provider, c.Users)
	return c, nil
}

// ProvideFirebaseApp initializes the Firebase Admin SDK for the configured project.
func ProvideFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize firebase app")
	}
	return app, nil
}

// ProvideDatabase opens the SQL database for the sqlite and postgres drivers.
func ProvideDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	case config.StoragePostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		return nil, errors.Errorf("storage driver %q is not SQL", cfg.StorageDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s database", cfg.StorageDriver)
	}
	return db, nil
}

func (c *Container) provideStorage(ctx context.Context, fbApp *firebase.App) error {
	switch c.Config.StorageDriver {
	case config.StorageMemory:
		c.Products = repositories.NewMockProductRepository()
		c.Orders = repositories.NewMockOrderRepository()
		c.Users = repositories.NewMockUserRepository()
		c.Credentials = repositories.NewMockCredentialRepository()

	case config.StorageSQLite, config.StoragePostgres:
		db, err := ProvideDatabase(c.Config)
		if err != nil {
			return err
		}
		c.DB = db
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, sqlDB.Close)
		}
		c.Products = repositories.NewGORMProductRepository(db)
		c.Orders = repositories.NewGORMOrderRepository(db)
		c.Users = repositories.NewGORMUserRepository(db)
		c.Credentials = repositories.NewGORMCredentialRepository(db)

	case config.StorageFirestore:
		client, err := fbApp.Firestore(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to create firestore client")
		}
		c.closers = append(c.closers, client.Close)
		c.useFirestore(client)

	default:
		return errors.Errorf("unknown storage driver %q", c.Config.StorageDriver)
	}

	log.WithField("driver", c.Config.StorageDriver).Info("Storage initialized")
	return nil
}

func (c *Container) useFirestore(client *firestore.Client) {
	c.Products = repositories.NewFirestoreProductRepository(client)
	c.Orders = repositories.NewFirestoreOrderRepository(client)
	c.Users = repositories.NewFirestoreUserRepository(client)
	c.Credentials = repositories.NewFirestoreCredentialRepository(client)
}

func (c *Container) provideIdentity(ctx context.Context, fbApp *firebase.App) error {
	switch c.Config.IdentityProvider {
	case config.IdentityFirebase:
		client, err := fbApp.Auth(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to create firebase auth client")
		}
		c.Provider = identity.NewFirebaseProvider(client)
	case config.IdentityLocal:
		c.Local = identity.NewLocalProvider(c.Credentials, c.Config.JWTSecret, c.Config.TokenTTL)
		c.Provider = c.Local
	default:
		return errors.Errorf("unknown identity provider %q", c.Config.IdentityProvider)
	}

	log.WithField("provider", c.Config.IdentityProvider).Info("Identity provider initialized")
	return nil
}

func (c *Container) provideEvents() {
	if c.Config.RabbitMQURL == "" {
		log.Info("RABBITMQ_URL not set. Order events are disabled")
		return
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: c.Config.RabbitMQURL, Queue: c.Config.RabbitMQQueue})
	if err != nil {
		log.WithError(err).Warn("RabbitMQ unavailable. Order events are disabled")
		return
	}
	c.Events = client
	c.closers = append(c.closers, client.Close)
}

// Close releases connections in reverse order of acquisition.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
