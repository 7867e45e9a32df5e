// @title FutbolTracker API
// @version 1.0
// @description Registro de jugadas de un partido por zona y acción, con análisis táctico generado por un modelo de lenguaje.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"futbol-tracker/internal/adapters/completion/gemini"
	"futbol-tracker/internal/adapters/completion/openai"
	"futbol-tracker/internal/adapters/storage/memory"
	"futbol-tracker/internal/adapters/storage/postgres"
	"futbol-tracker/internal/adapters/storage/redis"
	"futbol-tracker/internal/config"
	"futbol-tracker/internal/domain/matchlog"
	"futbol-tracker/internal/platform/logger"
	"futbol-tracker/internal/platform/metrics"
	"futbol-tracker/internal/ports/completion"
	"futbol-tracker/internal/router"

	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.NewFromEnv().Error("config load failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(logger.Options{
		Level:  level,
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	a, err := setup(ctx, cfg, log, uuid.NewString(), newCompleter)
	if err != nil {
		msg, fields := describeStartupError(err)
		fields["provider"] = cfg.Provider
		fields["storage"] = cfg.Storage
		log.Error(msg, fields)
		os.Exit(1)
	}
	defer a.close()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      a.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("starting server", map[string]any{
			"addr":      cfg.Addr,
			"provider":  cfg.Provider,
			"model":     a.completer.Model(),
			"storage":   cfg.Storage,
			"boot_id":   a.bootID,
			"log_level": level.String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down", nil)
	sctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Warn("shutdown incomplete", map[string]any{"error": err.Error()})
	}
}

type completerFactory func(cfg *config.Config) (completion.Completer, error)

// app es todo lo que el servidor necesita una vez pasado el arranque.
type app struct {
	handler   http.Handler
	completer completion.Completer
	bootID    string
	close     func()
}

var (
	errInvalidConfig    = errors.New("invalid configuration")
	errCompleterInit    = errors.New("completion client init failed")
	errCredentialVerify = errors.New("completion credential check failed")
	errStorageInit      = errors.New("storage init failed")
)

// setup valida la configuración y la credencial antes de construir el router.
// Si falla, no hay handler: ningún evento puede registrarse.
func setup(ctx context.Context, cfg *config.Config, log logger.Logger, bootID string, mkCompleter completerFactory) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	completer, err := mkCompleter(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errCompleterInit, err)
	}
	if cfg.VerifyCredential {
		vctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		err := completer.Verify(vctx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errCredentialVerify, err)
		}
	}

	var mm *metrics.Manager
	if cfg.MetricsEnabled {
		mm = metrics.New()
	}

	repo, closeRepo, err := openStorage(ctx, cfg, bootID, mm, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errStorageInit, err)
	}

	h := router.NewRouter(router.Options{
		Completer:     completer,
		EventsRepo:    repo,
		Logger:        log,
		Metrics:       mm,
		MinEvents:     cfg.MinEvents,
		IncludePrompt: cfg.IncludePrompt,
		Swagger:       cfg.SwaggerEnabled,
	})

	return &app{handler: h, completer: completer, bootID: bootID, close: closeRepo}, nil
}

// describeStartupError separa una credencial rechazada de un modelo inexistente o
// un host inalcanzable, que también hacen fallar Verify.
func describeStartupError(err error) (string, map[string]any) {
	fields := map[string]any{"error": err.Error()}

	switch {
	case errors.Is(err, config.ErrMissingAPIKey):
		fields["hint"] = "define FT_API_KEY (o GOOGLE_API_KEY / OPENAI_API_KEY)"
		return "missing completion credential", fields
	case errors.Is(err, errInvalidConfig):
		return "invalid configuration", fields
	case errors.Is(err, completion.ErrUnauthorized):
		return "completion credential rejected", fields
	case errors.Is(err, errCredentialVerify):
		fields["hint"] = "revisa FT_MODEL, FT_API_BASE_URL y la conectividad"
		return "completion service check failed", fields
	case errors.Is(err, errCompleterInit):
		return "completion client init failed", fields
	case errors.Is(err, errStorageInit):
		return "storage init failed", fields
	default:
		return "startup failed", fields
	}
}

func newCompleter(cfg *config.Config) (completion.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			BaseURL:     cfg.APIBaseURL,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.RequestTimeout,
		})
	default:
		return gemini.NewClient(gemini.Config{
			BaseURL: cfg.APIBaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.RequestTimeout,
		})
	}
}

// openStorage elige el backend del registro. Redis y Postgres quedan acotados
// al bootID: lo registrado no sobrevive a un reinicio del proceso.
func openStorage(ctx context.Context, cfg *config.Config, bootID string, mm *metrics.Manager, log logger.Logger) (matchlog.Repository, func(), error) {
	switch cfg.Storage {
	case config.StorageRedis:
		rdb, err := redis.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		repo := redis.NewEventsRepo(rdb, redis.Options{BootID: bootID, TTL: cfg.SessionTTL})
		return repo, func() { _ = rdb.Close() }, nil

	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		repo := postgres.NewEventsRepo(db, bootID)
		n, err := repo.PurgeStale(ctx)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		if n > 0 {
			log.Info("purged sessions from previous runs", map[string]any{"sessions": n})
		}
		return repo, func() { _ = db.Close() }, nil

	default:
		expireLog := log.With(map[string]any{"component": "memory_store"})
		repo := memory.NewEventRepo(
			memory.WithTTL(cfg.SessionTTL),
			memory.WithOnExpire(func(id string) {
				expireLog.Info("session expired", map[string]any{"session_id": id})
				if mm != nil {
					mm.SessionEnded()
				}
			}),
		)
		return repo, func() {}, nil
	}
}
