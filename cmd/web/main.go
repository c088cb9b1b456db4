package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pacificair.org/pacificair-web/internal/booking"
	"pacificair.org/pacificair-web/internal/cms"
	"pacificair.org/pacificair-web/internal/config"
	"pacificair.org/pacificair-web/internal/handlers"
	"pacificair.org/pacificair-web/internal/middleware"
	"pacificair.org/pacificair-web/internal/pagecache"
	"pacificair.org/pacificair-web/internal/render"
	"pacificair.org/pacificair-web/internal/resolve"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "templates directory")
	flag.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "public assets directory")
	flag.Parse()

	log := newLogger(cfg.Dev)
	defer func() { _ = log.Sync() }()

	renderer, err := render.New(cfg.TemplatesDir, cfg.Dev)
	if err != nil {
		log.Fatal("parse templates", zap.Error(err))
	}

	client := cms.NewClient(cfg.GraphQLURL, log)

	var store pagecache.Store
	if cfg.RedisAddr != "" {
		store = pagecache.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Info("page cache backed by redis", zap.String("addr", cfg.RedisAddr))
	} else {
		store = pagecache.NewMemoryStore()
	}
	resolver := resolve.New(client, store, log)

	airports, err := booking.LoadAirports(cfg.AirportsFile)
	if err != nil {
		log.Warn("load airports catalogue", zap.String("file", cfg.AirportsFile), zap.Error(err))
	}
	builder := booking.NewBuilder(cfg.BookingURL, cfg.BookingChannel)

	pages := handlers.NewPages(resolver, renderer, log)
	home := handlers.NewHome(client, renderer, airports, log)
	book := handlers.NewBooking(builder, renderer, log)
	purge := handlers.NewPurge(resolver, log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that strips
	// client-supplied values.
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Handle("/assets/*", middleware.AssetsWithCache("/assets/", filepath.Join(cfg.PublicDir, "assets")))

	r.Get("/", home.Handle)
	r.Post("/booking/search", book.Search)
	r.Post("/internal/purge", purge.Handle)
	r.Get("/*", pages.Handle)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("web listening", zap.String("addr", cfg.Addr), zap.Bool("dev", cfg.Dev))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("listen", zap.Error(err))
	}
}

func newLogger(dev bool) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if dev {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		os.Exit(1)
	}
	return log
}
