package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/cart"
	"github.com/nikolayk812/storefront-cart/internal/catalog"
	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/graphql"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/order"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const usage = `usage: storefront [-config file] <command> [args]

commands:
  products [category]           list the catalog, optionally one category
  categories                    list catalog categories
  add <product> [Name=Value...] add a product with the given attribute choices
  quick-add <product>           add a product with the first option of every attribute
  cart                          show the cart and its totals
  qty <index> <quantity>        set the quantity of a line item, below 1 removes it
  attr <index> <name> <value>   change an attribute choice of a line item
  rm <index>                    remove a line item
  clear                         empty the cart
  submit                        place an order for the cart
  migrate                       apply postgres migrations
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("STOREFRONT_CONFIG"), "path to a YAML config file")
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command given")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if fs.Arg(0) == "migrate" {
		if err := repository.Migrate(cfg.Storage.PostgresDSN); err != nil {
			return fmt.Errorf("repository.Migrate: %w", err)
		}
		log.Info("migrations applied")
		return nil
	}

	repo, closeRepo, err := openRepository(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("openRepository: %w", err)
	}
	defer closeRepo()

	gql, err := graphql.NewClient(graphql.Options{
		Endpoint:    cfg.GraphQL.Endpoint,
		Timeout:     cfg.GraphQL.Timeout,
		MaxFailures: cfg.GraphQL.MaxFailures,
		OpenTimeout: cfg.GraphQL.OpenTimeout,
	}, log.Named("graphql"))
	if err != nil {
		return fmt.Errorf("graphql.NewClient: %w", err)
	}

	a := &app{
		catalog: catalog.NewStore(graphql.NewCatalog(gql, log.Named("catalog")), log.Named("catalog")),
		cart:    cart.Open(ctx, repo, log.Named("cart")),
		out:     os.Stdout,
	}
	a.orders = order.NewSubmitter(a.cart, graphql.NewOrders(gql), log.Named("order"))

	return a.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
}

func openRepository(ctx context.Context, cfg config.Storage, log *zap.Logger) (port.CartRepository, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("client.Ping: %w", err)
		}
		log.Debug("redis connected", zap.String("addr", cfg.RedisAddr))

		repo, err := repository.NewRedisCart(client, cfg.Key)
		if err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("repository.NewRedisCart: %w", err)
		}
		return repo, func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("pool.Ping: %w", err)
		}
		log.Debug("postgres connected")

		repo, err := repository.NewCart(pool, cfg.Key)
		if err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("repository.NewCart: %w", err)
		}
		return repo, pool.Close, nil

	default:
		repo, err := repository.NewFileCart(cfg.Dir, cfg.Key)
		if err != nil {
			return nil, noop, fmt.Errorf("repository.NewFileCart: %w", err)
		}
		return repo, noop, nil
	}
}
