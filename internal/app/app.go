package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"socialfeed/config"
	"socialfeed/internal/adapter/in/rest"
	memstore "socialfeed/internal/adapter/out/storage/inmemory"
	pgstore "socialfeed/internal/adapter/out/storage/postgres"
	"socialfeed/internal/auth"
	"socialfeed/internal/service"
	"socialfeed/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	cfg  config.Config
	srv  *http.Server
	pool *pgxpool.Pool
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	var (
		postStorage    service.PostStorage
		likeStorage    service.LikeStorage
		commentStorage service.CommentStorage
		userStorage    service.UserStorage
		pool           *pgxpool.Pool
	)

	switch cfg.StorageType {
	case "postgres":
		var err error
		pool, err = pgxpool.New(ctx, cfg.Postgres.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("pgxpool: %w", err)
		}
		postStorage = pgstore.NewPostStorage(pool, trmpgx.DefaultCtxGetter)
		likeStorage = pgstore.NewLikeStorage(pool, trmpgx.DefaultCtxGetter)
		commentStorage = pgstore.NewCommentStorage(pool, trmpgx.DefaultCtxGetter)
		userStorage = pgstore.NewUserStorage(pool, trmpgx.DefaultCtxGetter)

	default:
		likeStore := memstore.NewLikeStorage()
		commentStore := memstore.NewCommentStorage()
		postStorage = memstore.NewPostStorage(likeStore, commentStore)
		likeStorage = likeStore
		commentStorage = commentStore
		userStorage = memstore.NewUserStorage()
	}

	tokens := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	postSvc := service.NewPostService(postStorage, likeStorage, commentStorage, userStorage)
	commentSvc := service.NewCommentService(commentStorage, postStorage, userStorage)
	userSvc := service.NewUserService(userStorage, tokens)

	e := rest.NewServer(postSvc, commentSvc, userSvc, tokens).NewEcho()

	addr := ":" + cfg.HTTP.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("app initialized", "addr", addr, "storage", cfg.StorageType)
	return &App{cfg: cfg, srv: srv, pool: pool}, nil
}

func (a *App) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = a.srv.Shutdown(shCtx)
		if a.pool != nil {
			a.pool.Close()
		}
		return nil

	case err := <-errCh:
		if a.pool != nil {
			a.pool.Close()
		}
		return err
	}
}
