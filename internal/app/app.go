package app

import (
	"context"
	"log/slog"

	httpapp "blogcaste/internal/app/http"
	"blogcaste/internal/config"
	"blogcaste/internal/repository"
	authorservice "blogcaste/internal/services/author_service"
	blogservice "blogcaste/internal/services/blog_service"
	categoryservice "blogcaste/internal/services/category_service"
	tokenservice "blogcaste/internal/services/token_service"
	userservice "blogcaste/internal/services/user_service"
	"blogcaste/internal/storage/assetstore"
	"blogcaste/internal/storage/postgresql"
	redisstorage "blogcaste/internal/storage/redis"
	httprouters "blogcaste/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	Storage    *postgresql.Storage
	Redis      *redisstorage.Client
}

func New(log *slog.Logger, cfg *config.Config) *App {
	storage, err := postgresql.New(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	redisClient := redisstorage.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	assets, err := assetstore.NewMinioStore(cfg.Assets)
	if err != nil {
		panic(err)
	}

	repo := repository.NewRepository(storage.Pool(), cfg.StatementTimeout)
	tokenRepo := repository.NewRedisTokenRepo(redisClient)

	tokenService := tokenservice.NewTokenService(tokenRepo, cfg.TokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := userservice.NewUserService(log, repo.User, tokenService)
	blogService := blogservice.NewBlogService(log, repo.Blog, assets)
	categoryService := categoryservice.NewCategoryService(log, repo.Category, repo.Blog)
	authorService := authorservice.NewAuthorService(log, repo.Author, repo.Blog)

	routers := httprouters.NewRouter(
		log,
		cfg.IsProd(),
		userService,
		tokenService,
		blogService,
		categoryService,
		authorService,
		storage,
		redisClient,
	)

	server := httpapp.New(log, cfg.TokenSecret, cfg.HTTP.Host, cfg.HTTP.Port, cfg.HTTP.AllowOrigins, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		Storage:    storage,
		Redis:      redisClient,
	}
}

func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		panic(err)
	}

	a.Storage.Stop()

	if err := a.Redis.Close(); err != nil {
		panic(err)
	}
}
