package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront/internal/admin"
	"shopfront/internal/cart"
	"shopfront/internal/category"
	"shopfront/internal/checkout"
	"shopfront/internal/config"
	"shopfront/internal/dashboard"
	"shopfront/internal/db"
	"shopfront/internal/format"
	"shopfront/internal/localstore"
	"shopfront/internal/logger"
	"shopfront/internal/metrics"
	"shopfront/internal/order"
	"shopfront/internal/product"
	"shopfront/internal/review"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const sessionTTL = 24 * time.Hour

var errUsage = errors.New("usage")

// app holds the services one invocation works against.
type app struct {
	products   product.Service
	categories category.Service
	orders     order.Service
	reviews    review.Service
	admins     admin.Service
	adminErr   error
	cart       *cart.Store
	checkout   *checkout.Service
	dashboard  *dashboard.Service
	money      *format.Formatter
	out        io.Writer
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	local, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		logger.L().Fatal("failed to open local store", zap.String("path", cfg.LocalStorePath), zap.Error(err))
	}
	defer local.Close()

	a, err := newApp(cfg, database, local, os.Stdout)
	if err != nil {
		logger.L().Fatal("failed to start", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = logger.NewRequest(ctx)

	err = a.run(ctx, os.Args[1:])
	logger.FromCtx(ctx).Debug("counters", zap.Any("metrics", metrics.Default.Snapshot()))
	if err != nil {
		logger.FromCtx(ctx).Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, database *sql.DB, local *localstore.Store, out io.Writer) (*app, error) {
	money, err := format.New(cfg.Currency, language.English)
	if err != nil {
		return nil, err
	}

	products := product.NewServiceWithMetrics(product.NewRepository(database), metrics.Default)
	categories := category.NewService(category.NewRepository(database))
	orders := order.NewService(order.NewRepository(database))

	a := &app{
		products:   products,
		categories: categories,
		orders:     orders,
		reviews:    review.NewService(review.NewRepository(database)),
		cart:       cart.NewStore(cart.WithPersister(local)),
		checkout:   checkout.NewService(orders, cfg.ShippingCost),
		dashboard:  dashboard.NewService(products, categories, orders),
		money:      money,
		out:        out,
	}

	// Storefront commands still work without a signing secret.
	tokens, err := admin.NewTokenIssuer(cfg.JWTSecret, sessionTTL)
	if err != nil {
		a.adminErr = err
	} else {
		a.admins = admin.NewService(admin.NewRepository(database), tokens, admin.NewLoginLimiter(), local)
	}
	return a, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	return a.command().Run(ctx, append([]string{"shopfront"}, args...))
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "shopfront",
		Usage:     "mobile storefront and back office",
		Writer:    a.out,
		ErrWriter: a.out,
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Present() {
				return fmt.Errorf("%w: unknown command %q", errUsage, cmd.Args().First())
			}
			return fmt.Errorf("%w: shopfront <command>", errUsage)
		},
		Commands: []*cli.Command{
			a.browseCommand(),
			a.dealsCommand(),
			a.productCommand(),
			a.cartCommand(),
			a.checkoutCommand(),
			a.ordersCommand(),
			a.reviewCommand(),
			a.adminCommand(),
		},
	}
}
