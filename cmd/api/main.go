package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_service/internal/adapters/http_server"
	"hotel_service/internal/adapters/images"
	"hotel_service/internal/adapters/observability"
	redisad "hotel_service/internal/adapters/redis"
	"hotel_service/internal/adapters/ristretto"
	"hotel_service/internal/app"
	"hotel_service/internal/domain"
	"hotel_service/internal/shared"
	mongostore "hotel_service/internal/storage/mongo"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.App.Env, cfg.App.LogLevel)

	observability.Serve(cfg.Metrics.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	client, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	store := mongostore.New(client.Database(cfg.Mongo.Database))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("database connection ok")

	// deps
	cache, closeCache := buildCache(ctx, cfg)
	defer closeCache()

	var imgs domain.ImageStore = images.Noop{}
	if cfg.Images.BaseURL != "" {
		c, err := images.New(cfg.Images.BaseURL, cfg.Images.RPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize image client")
		}
		imgs = c
	} else {
		log.Warn().Msg("images.base_url not set; image purge disabled")
	}

	pop := app.NewPopulator(store, store, store)
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	// http
	srv := server.New(server.Options{RequestTimeout: cfg.HTTP.RequestTimeout, CORSOrigins: cfg.HTTP.CORSOrigins})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Hotels:    app.NewHotelService(store, imgs, pop, cache, ttl),
		Rooms:     app.NewRoomService(store, store, store, pop),
		RoomTypes: app.NewRoomTypeService(store, pop),
		Amenities: app.NewAmenityService(store),
		Ready:     store.Ping,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// buildCache returns the hotel read cache. With redis.addr set every instance shares redis, so
// an invalidation on one instance is seen by all. Without redis the cache is in-process, which
// is only coherent for a single instance. A nil cache disables caching.
func buildCache(ctx context.Context, cfg shared.Config) (domain.Cache, func()) {
	if cfg.Cache.TTLSeconds == 0 {
		return nil, func() {}
	}
	if cfg.Redis.Addr == "" {
		l1, err := ristretto.New(cfg.Cache.L1MaxMB << 20)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize in-process cache")
		}
		log.Warn().Msg("redis disabled; using in-process hotel cache, run a single instance")
		return l1, l1.Close
	}

	rc := redisad.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable; continuing, cache errors are non-fatal")
	}
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}
}
