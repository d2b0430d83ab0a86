package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"stagestyle/internal/config"
	"stagestyle/internal/di"
	"stagestyle/internal/repositories"
	"stagestyle/internal/seed"
	"stagestyle/internal/server"
	"stagestyle/pkg/rabbitmq"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.WithError(err).Fatal("stagestyle exited with error")
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:   "stagestyle",
		Usage:  "StageStyle catalog API",
		Before: setupLogging,
		Action: serve,
		Flags:  serveFlags(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Flags:  serveFlags(),
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the SQL schema",
				Action: migrate,
			},
			{
				Name:   "seed",
				Usage:  "load the starter catalog and the first Administrador",
				Action: seedData,
			},
			{
				Name:   "consume",
				Usage:  "log order.created events from RabbitMQ",
				Action: consume,
			},
		},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "with-consumer",
			Usage: "also consume order events in this process",
		},
	}
}

func setupLogging(_ *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.LogFormat == "text" {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	log.SetLevel(level)
	return nil
}

// bootstrap loads configuration and wires the container, creating the SQL schema when needed.
func bootstrap(ctx context.Context) (*di.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	c, err := di.Build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if c.DB != nil {
		if err := repositories.AutoMigrate(c.DB); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

// prepare creates the first Administrador when ADMIN_EMAIL is set. The memory driver
// also gets the starter catalog, since nothing survives a restart there.
func prepare(ctx context.Context, c *di.Container) error {
	if c.Config.StorageDriver == config.StorageMemory {
		res, err := seed.Run(ctx, c.ProductService, c.UserService, c.Config.AdminEmail, c.Config.AdminPassword)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"products_created": res.ProductsCreated,
			"admin_created":    res.AdminCreated,
		}).Info("Seeded in-memory storage")
		return nil
	}

	if c.Config.AdminEmail == "" {
		return nil
	}
	created, err := c.UserService.BootstrapAdmin(ctx, c.Config.AdminEmail, c.Config.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		log.WithField("email", c.Config.AdminEmail).Info("Created first Administrador")
	}
	return nil
}

func serve(cliCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cliCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := prepare(ctx, c); err != nil {
		return err
	}

	app := server.NewApp(c)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", c.Config.AppPort).Info("Starting server")
		return app.Listen(c.Config.AppPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		return app.Shutdown()
	})
	if cliCtx.Bool("with-consumer") {
		if c.Events == nil {
			log.Warn("--with-consumer given but RabbitMQ is not available")
		} else {
			g.Go(func() error {
				return c.Events.ConsumeOrderEvents(gctx, rabbitmq.LogOrderEvent)
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server gracefully stopped")
	return nil
}

func migrate(cliCtx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StorageDriver != config.StorageSQLite && cfg.StorageDriver != config.StoragePostgres {
		log.WithField("driver", cfg.StorageDriver).Info("Storage driver has no schema. Nothing to migrate")
		return nil
	}

	db, err := di.ProvideDatabase(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repositories.AutoMigrate(db); err != nil {
		return err
	}
	log.WithField("driver", cfg.StorageDriver).Info("Schema migrated")
	return nil
}

func seedData(cliCtx *cli.Context) error {
	c, err := bootstrap(cliCtx.Context)
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := seed.Run(cliCtx.Context, c.ProductService, c.UserService, c.Config.AdminEmail, c.Config.AdminPassword)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"products_created": res.ProductsCreated,
		"products_skipped": res.ProductsSkipped,
		"admin_created":    res.AdminCreated,
	}).Info("Seeding complete")
	return nil
}

func consume(cliCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cliCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.RabbitMQURL == "" {
		return errors.New("RABBITMQ_URL is required to consume order events")
	}

	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
	if err != nil {
		return err
	}
	defer client.Close()

	return client.ConsumeOrderEvents(ctx, rabbitmq.LogOrderEvent)
}
