package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"purem-oda-shop/services/shop-api/internal/calculator"
	httpx "purem-oda-shop/services/shop-api/internal/http"
	"purem-oda-shop/services/shop-api/internal/http/handlers"
	"purem-oda-shop/services/shop-api/internal/repo"
	"purem-oda-shop/services/shop-api/internal/service"
	"purem-oda-shop/shared/pkg/cache"
	"purem-oda-shop/shared/pkg/config"
	"purem-oda-shop/shared/pkg/logger"
	"purem-oda-shop/shared/pkg/rabbit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New("shop-api", cfg.Common.LogLevel)

	var store repo.ItemStore
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		ctxDB, cancelDB := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelDB()
		db, err := pgxpool.New(ctxDB, cfg.Postgres.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("pg connect failed")
		}
		defer db.Close()

		pg := &repo.ItemsPG{DB: db}
		if err := pg.EnsureSchema(ctxDB); err != nil {
			log.Fatal().Err(err).Msg("pg schema failed")
		}
		store = pg
	default:
		store = &repo.ItemsFile{Path: cfg.Store.DataFile}
	}

	if cfg.Redis.Addr != "" {
		rc := cache.New(cfg.Redis.Addr)
		defer func() { _ = rc.Close() }()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, cache will miss until it is back")
		}
		cancelPing()
		store = &repo.ItemsCached{Store: store, Cache: rc, TTL: cfg.Redis.TTL, Log: log}
	}

	items := &service.ItemsService{Store: store, Log: log}

	if cfg.Rabbit.URL != "" {
		rc, err := rabbit.Connect(cfg.Rabbit.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbit connect failed")
		}
		defer func() { _ = rc.Close() }()

		if err := rabbit.DeclareBase(rc.Ch); err != nil {
			log.Fatal().Err(err).Msg("declare base failed")
		}
		items.Publisher = rabbit.NewPublisher(rc.Ch, rabbit.ExchangeEvents)
	}

	bridge, err := calculator.New(cfg.Calculator.Command, cfg.Calculator.Dir, cfg.Calculator.Timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("calculator config invalid")
	}

	router := httpx.NewRouter(&httpx.Handlers{
		Items:  &handlers.ItemsHandler{Svc: items, Log: log},
		Orders: &handlers.OrdersHandler{Calc: bridge, Log: log},
		Static: httpx.Static(cfg.Static.Dir, cfg.Static.Index),
	}, httpx.RouterOptions{Log: log, CORSOrigins: cfg.HTTP.CORSOrigins})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Backend).Msg("http started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutdown...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}
