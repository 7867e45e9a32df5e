package router

import (
	"net/http"

	_ "futbol-tracker/docs"
	mem "futbol-tracker/internal/adapters/storage/memory"
	"futbol-tracker/internal/domain/analysis"
	"futbol-tracker/internal/domain/matchlog"
	"futbol-tracker/internal/middleware"
	"futbol-tracker/internal/platform/logger"
	"futbol-tracker/internal/platform/metrics"
	"futbol-tracker/internal/ports/completion"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Completer es obligatorio: sin servicio de completado no hay sesión.
	Completer completion.Completer

	// Opcional: si viene, se usa; si no, in-memory.
	EventsRepo matchlog.Repository

	Logger  logger.Logger   // nil => Nop
	Metrics *metrics.Manager // nil => sin /metrics

	MinEvents     int
	IncludePrompt bool
	Swagger       bool
}

func NewRouter(opts Options) http.Handler {
	if opts.Completer == nil {
		panic("router: nil completer")
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	repo := opts.EventsRepo
	if repo == nil {
		repo = mem.NewEventRepo()
	}

	var (
		logOpts      []matchlog.Option
		analysisOpts = []analysis.Option{
			analysis.WithLogger(log.With(map[string]any{"component": "analysis"})),
			analysis.WithMinEvents(opts.MinEvents),
			analysis.WithPromptInReport(opts.IncludePrompt),
		}
	)
	if opts.Metrics != nil {
		logOpts = append(logOpts, matchlog.WithObserver(opts.Metrics))
		analysisOpts = append(analysisOpts, analysis.WithObserver(opts.Metrics))
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	// Services por módulo
	logSvc := matchlog.NewService(repo, logOpts...)
	analysisSvc := analysis.NewService(logSvc, opts.Completer, analysisOpts...)

	// Rutas por módulo
	matchlog.RegisterRoutes(r, logSvc)
	analysis.RegisterRoutes(r, analysisSvc)

	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	return r
}
