package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ajees1626/Pixdotbackend/internal/auth"
	"github.com/Ajees1626/Pixdotbackend/internal/cache"
	"github.com/Ajees1626/Pixdotbackend/internal/casestudies"
	"github.com/Ajees1626/Pixdotbackend/internal/config"
	"github.com/Ajees1626/Pixdotbackend/internal/db"
	"github.com/Ajees1626/Pixdotbackend/internal/handlers"
	"github.com/Ajees1626/Pixdotbackend/internal/media"
	"github.com/Ajees1626/Pixdotbackend/internal/middleware"
	"github.com/Ajees1626/Pixdotbackend/internal/notifications"
	"github.com/Ajees1626/Pixdotbackend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo casestudies.Repository
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("postgres connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Error("schema creation failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("postgres connected")
		repo = casestudies.NewPostgresRepository(pool)
	default:
		repo = casestudies.NewFileRepository(cfg.CaseStudiesFile)
		logger.Info("file store ready", slog.String("path", cfg.CaseStudiesFile))
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "pixdot-backend",
		}
	}

	mailer := notifications.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if mailer == nil {
		logger.Info("smtp mailer disabled")
	} else {
		logger.Info("smtp mailer enabled", slog.String("host", cfg.SMTPHost), slog.String("user", cfg.SMTPUser))
	}

	var storer media.Storer
	var uploads *media.LocalStorer
	switch cfg.MediaBackend {
	case "s3":
		s3, err := media.NewS3Storer(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL, cfg.S3PublicURL)
		if err != nil {
			logger.Error("s3 client failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		storer = s3
		logger.Info("s3 media backend ready", slog.String("bucket", cfg.S3Bucket))
	default:
		local, err := media.NewLocalStorer(cfg.UploadsDir)
		if err != nil {
			logger.Error("uploads dir failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		storer = local
		uploads = local
		logger.Info("local media backend ready", slog.String("dir", cfg.UploadsDir))
	}

	server := &handlers.Server{
		Cfg:     cfg,
		Val:     validation.New(),
		Log:     logger,
		Media:   storer,
		Uploads: uploads,
		JWT:     jwtManager,
	}
	if mailer != nil {
		server.Mailer = mailer
	}

	csService := casestudies.NewService(repo)
	csHandler := casestudies.NewHandler(csService, server.Val, logger, cacheStore, time.Duration(cfg.CacheTTLSeconds)*time.Second)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	contactLimiter := middleware.NewRateLimiter(cfg.RateLimitContact, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.With(contactLimiter.Middleware).Post("/contact", server.CreateContact)
		api.Post("/login", server.AdminLogin)
		api.Post("/refresh", server.AdminRefresh)
		api.Post("/logout", server.AdminLogout)
		api.Get("/case-studies", csHandler.List)
		api.Get("/case-studies/{id}", csHandler.Get)

		registerAdmin := func(admin chi.Router) {
			admin.Post("/upload-image", server.UploadImage)
			admin.Post("/add-case-study", csHandler.Create)
			admin.Put("/update-case-study/{id}", csHandler.Update)
			admin.Delete("/delete-case-study/{id}", csHandler.Delete)
		}
		if cfg.AdminAPIKey != "" || jwtManager != nil {
			api.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager))
				registerAdmin(protected)
			})
		} else {
			// No admin key and no JWT secret configured: the mutating
			// routes stay open, as the original deployments ran them.
			registerAdmin(api)
		}
	})

	r.Get("/uploads/{filename}", server.ServeUpload)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
