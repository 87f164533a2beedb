package main

import (
	"context"
	"database/sql"
	"delivery-fee-service/internal/adapters/cache"
	"delivery-fee-service/internal/adapters/distance"
	"delivery-fee-service/internal/adapters/store"
	"delivery-fee-service/internal/api"
	"delivery-fee-service/internal/config"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/db"
	"delivery-fee-service/internal/platform/obs"
	"delivery-fee-service/internal/ports"
	"delivery-fee-service/internal/services"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// backend bundles the blob store with the optional SQL handle used for geocoding.
type backend struct {
	blobs   ports.BlobStore
	db      *sql.DB
	dialect store.Dialect
	close   func()
}

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	settings := config.Load()
	log := obs.Logger()

	if err := obs.Configure(settings.LogLevel, settings.LogFormat); err != nil {
		log.WithError(err).Fatal("configure logging")
	}

	fees, hours, err := config.LoadTariffs(settings.TariffsPath)
	if err != nil {
		log.WithError(err).Fatal("load tariffs")
	}

	ctx := context.Background()

	be, err := openBackend(ctx, settings)
	if err != nil {
		log.WithError(err).Fatal("open storage")
	}
	defer be.close()

	var geocodeCache *cache.SQLGeocodeCache
	if be.db != nil {
		geocodeCache = cache.NewSQLGeocodeCache(be.db, be.dialect)
	}

	estimator := distance.NewEstimator(nil, nil, distance.FallbackModel{
		RoadFactor:      settings.RoadFactor,
		AverageSpeedKmh: settings.FallbackSpeed,
		DurationBuffer:  settings.DurationBuffer,
	})
	estimator.Timeout = settings.MapsTimeout

	if settings.MapsAPIKey != "" {
		opts := []distance.MapsOption{
			distance.WithBaseURL(settings.MapsBaseURL),
			distance.WithTimeout(settings.MapsTimeout),
		}
		if geocodeCache != nil {
			opts = append(opts, distance.WithGeocodeCache(geocodeCache))
		}
		maps, err := distance.NewMapsClient(settings.MapsAPIKey, opts...)
		if err != nil {
			log.WithError(err).Fatal("create maps client")
		}
		estimator.Provider = maps
		estimator.Geocoder = maps
	} else {
		log.Warn("MAPS_API_KEY not set; distances use the great-circle fallback only")
		if geocodeCache != nil {
			estimator.Geocoder = geocodeCache
		}
	}

	feeCache := cache.NewDeliveryCache(cache.Config{
		TTL:      settings.CacheTTL,
		Capacity: settings.CacheCapacity,
	}, be.blobs)

	origin := domain.Location{
		Address: settings.StoreAddress,
		Coords:  &domain.Coordinates{Lat: settings.StoreLat, Lng: settings.StoreLng},
	}

	svc, err := services.NewDeliveryService(services.DeliveryServiceConfig{
		Origin:        origin,
		MaxDistanceKm: settings.MaxDeliveryKm,
		Fees:          fees,
	}, feeCache, estimator)
	if err != nil {
		log.WithError(err).Fatal("create delivery service")
	}

	if err := svc.Start(ctx); err != nil {
		log.WithError(err).Warn("persisted delivery cache not restored; starting empty")
	}

	router := api.NewRouter(api.RouterConfig{
		Delivery:       svc,
		Hours:          hours,
		RateLimitRPS:   settings.RateLimitRPS,
		RateLimitBurst: settings.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"storage": settings.StorageType,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	if err := svc.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("flush delivery cache")
	}
	log.Info("server stopped")
}

func openBackend(ctx context.Context, s config.Settings) (*backend, error) {
	noop := func() {}

	switch s.StorageType {
	case "memory":
		return &backend{blobs: store.NewMemoryStore(), close: noop}, nil

	case "sqlite":
		conn, err := db.OpenSQLite(s.DBPath)
		if err != nil {
			return nil, err
		}
		return sqlBackend(conn, store.SQLite, s.CacheKey)

	case "postgres":
		if s.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for postgres storage")
		}
		conn, err := db.Open(s.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return sqlBackend(conn, store.Postgres, s.CacheKey)

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: s.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("ping redis %q: %w", s.RedisAddr, err)
		}
		return &backend{
			blobs: store.NewRedisStore(client, s.CacheKey),
			close: func() { client.Close() },
		}, nil

	case "dynamodb":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := dynamodb.NewFromConfig(awsCfg)
		return &backend{
			blobs: store.NewDynamoStore(client, s.DynamoTable, s.CacheKey),
			close: noop,
		}, nil
	}

	return nil, fmt.Errorf("unknown STORAGE_TYPE %q", s.StorageType)
}

func sqlBackend(conn *sql.DB, dialect store.Dialect, key string) (*backend, error) {
	if err := store.InitSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}
	return &backend{
		blobs:   store.NewSQLStore(conn, dialect, key),
		db:      conn,
		dialect: dialect,
		close:   func() { conn.Close() },
	}, nil
}
