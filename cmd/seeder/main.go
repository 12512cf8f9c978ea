package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_service/internal/adapters/images"
	"hotel_service/internal/adapters/observability"
	"hotel_service/internal/app"
	"hotel_service/internal/shared"
	mongostore "hotel_service/internal/storage/mongo"
)

func main() {
	file := flag.String("file", "seed.yaml", "path to the YAML seed catalog (see seed.example.yaml)")
	flag.Parse()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.App.Env, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("open seed file failed")
	}
	seed, err := app.ParseSeedFile(f)
	_ = f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("parse seed file failed")
	}

	log.Info().
		Str("file", *file).
		Int("workers", cfg.Seed.Workers).
		Int("hotels", len(seed.Hotels)).
		Msg("seeder starting")

	client, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	store := mongostore.New(client.Database(cfg.Mongo.Database))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}
	log.Info().Msg("db ping ok")

	// Seeding only creates records, so neither the read cache nor image purge is needed.
	pop := app.NewPopulator(store, store, store)
	seeder := app.NewSeeder(
		app.NewHotelService(store, images.Noop{}, pop, nil, 0),
		app.NewRoomService(store, store, store, pop),
		app.NewRoomTypeService(store, pop),
		app.NewAmenityService(store),
		cfg.Seed.Workers,
	)

	rep, err := seeder.Run(ctx, seed)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().
		Int("amenities", rep.Amenities).
		Int("room_types", rep.RoomTypes).
		Int("hotels", rep.Hotels).
		Int("rooms", rep.Rooms).
		Int("failed_hotels", rep.FailedHotels).
		Int("failed_rooms", rep.FailedRooms).
		Msg("seeding completed")
}
