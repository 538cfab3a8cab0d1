package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EduAble/internal/app/server"
	"EduAble/internal/config"
	"EduAble/internal/delivery/http"
	"EduAble/internal/service"
	"EduAble/internal/service/admin"
	"EduAble/internal/service/auth"
	"EduAble/internal/service/course"
	"EduAble/internal/service/enrollment"
	"EduAble/internal/service/review"
	"EduAble/internal/storage"
	"EduAble/internal/storage/elastic"
	"EduAble/internal/storage/memory"
	"EduAble/internal/storage/minioStorage"
	"EduAble/internal/storage/postgres"
	"EduAble/internal/storage/sessionstore"
	"EduAble/pkg/logger"
)

const sessionSweepInterval = time.Minute

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	var st storage.Storage
	switch cfg.Storage.Backend {
	case "postgres":
		pg, err := postgres.NewPostgresStorage(cfg.Postgres.User, cfg.Postgres.Password,
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
		if err != nil {
			log.FatalErr("error connecting to database", err)
		}
		defer pg.Close()
		st = pg
	case "memory":
		st = memory.New()
	default:
		log.Fatal("unknown storage backend: " + cfg.Storage.Backend)
	}

	var sessions sessionstore.Store
	switch cfg.Session.Store {
	case "redis":
		rs, err := sessionstore.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.FatalErr("error connecting to redis", err)
		}
		defer rs.Close()
		sessions = rs
	case "memory":
		ms := sessionstore.NewMemoryStore(sessionSweepInterval)
		defer ms.Close()
		sessions = ms
	default:
		log.Fatal("unknown session store: " + cfg.Session.Store)
	}

	var searchRepo course.SearchRepo
	if cfg.ES.Enabled {
		esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
		if err != nil {
			log.FatalErr("error connecting to elasticsearch", err)
		}
		courseSearch := elastic.NewCourseSearchRepository(esClient, cfg.ES.Index)
		if err := courseSearch.CreateIndexIfNotExist(context.Background()); err != nil {
			log.FatalErr("error creating search index", err)
		}
		searchRepo = courseSearch
	}

	var thumbnailRepo course.ThumbnailRepo
	if cfg.Minio.Enabled {
		ms, err := minioStorage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey,
			cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.FatalErr("error connecting to minio", err)
		}
		thumbnails, err := minioStorage.NewThumbnailStorage(ms, cfg.Minio.Bucket, cfg.Minio.PresignTTL)
		if err != nil {
			log.FatalErr("error preparing thumbnail bucket", err)
		}
		thumbnailRepo = thumbnails
	}

	sessionManager := auth.NewSessionManager(sessions, cfg.Session.Secret, cfg.Session.TTL)
	u := service.Collection{
		AuthService:       auth.NewAuthService(log, sessionManager, st),
		CourseService:     course.NewCourseService(log, st, st, st, searchRepo, thumbnailRepo),
		EnrollmentService: enrollment.NewEnrollmentService(log, st, st, st, st),
		ReviewService:     review.NewReviewService(log, st, st),
		AdminService:      admin.NewAdminService(log, st, st, st),
	}

	r := http.InitRoutes(log, u, cfg.HTTPServer.CORSOrigin, cfg.Session.Cookie)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("HTTP server listening", "address", cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("http server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
