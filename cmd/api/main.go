package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/appdotbuilder/souvia-ecommerce/internal/config"
	"github.com/appdotbuilder/souvia-ecommerce/internal/flash"
	"github.com/appdotbuilder/souvia-ecommerce/internal/infra/db"
	infraRepo "github.com/appdotbuilder/souvia-ecommerce/internal/infra/repository"
	"github.com/appdotbuilder/souvia-ecommerce/internal/logger"
	"github.com/appdotbuilder/souvia-ecommerce/internal/metrics"
	"github.com/appdotbuilder/souvia-ecommerce/internal/server"
	"github.com/appdotbuilder/souvia-ecommerce/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, db.Close(gormDB)) }()

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(gormDB); err != nil {
			return err
		}
	}

	//計測
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewStorefront(reg)

	//フラッシュ（REDIS_URLが無ければメモリ）
	var flashes flash.Store = flash.NewMemoryStore(cfg.Redis.TTL)
	if cfg.Redis.URL != "" {
		var client *redis.Client
		client, err = flash.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, client.Close()) }()
		flashes = flash.NewRedisStore(client, cfg.Redis.TTL)
	}

	//Repository（GORM実装）生成
	products := infraRepo.NewProductGormRepository(gormDB)
	categories := infraRepo.NewCategoryGormRepository(gormDB)
	cartItems := infraRepo.NewCartItemGormRepository(gormDB)
	tx := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	deps := server.Deps{
		Config:   cfg,
		Logger:   logg,
		Metrics:  m,
		Gatherer: reg,
		Flash:    flashes,
		Catalog:  usecase.NewCatalogUsecase(products, categories, infraRepo.NewTestimonialGormRepository(gormDB)),
		Cart:     usecase.NewCartUsecase(cartItems, products, m),
		Orders: usecase.NewOrderUsecase(
			tx,
			cartItems,
			infraRepo.NewOrderGormRepository(gormDB),
			usecase.UUIDNumberGenerator{},
			usecase.SystemClock{},
			usecase.OrderConfig{
				ShippingCost: cfg.Store.ShippingCost,
				StrictStock:  cfg.Store.StrictStock,
			},
			logg,
			m,
		),
		Dashboard: usecase.NewDashboardUsecase(infraRepo.NewReportGormRepository(gormDB), usecase.SystemClock{}),
		Products:  usecase.NewProductUsecase(tx, products, categories, infraRepo.NewAuditLogGormRepository(gormDB)),
	}

	//Server起動
	e := server.New(deps)
	logg.Event(ctx, zerolog.InfoLevel).Str("addr", cfg.App.Addr()).Str("env", cfg.App.Env).Msg("server.start")
	if err := server.Run(ctx, e, cfg.App.Addr()); err != nil {
		return err
	}
	logg.Info(ctx, "server.stopped")
	return nil
}
