package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	custommw "blogcaste/internal/middleware"
	httprouters "blogcaste/internal/transport/http"
)

var slugRe = regexp.MustCompile(`^[a-z0-9_-]+$`)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
	token   string
}

func New(log *slog.Logger, token, host, port string, allowOrigins []string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	// the slug tag accepts already-normalized slugs only
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	e.Validator = &CustomValidator{validator: validate}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))
	e.Use(middleware.Recover())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	e.Use(echoprometheus.NewMiddleware("blogcaste"))
	e.Use(custommw.PrometheusMetrics)

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Info("statsviz start with error", slog.Any("error", err.Error()))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		host:    host,
		port:    port,
		token:   token,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf("%s:%s", s.host, s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	jwtMW := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(s.token),
	})

	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", s.routers.Signup)
			auth.POST("/login", s.routers.Login)
			auth.POST("/refresh", s.routers.Refresh)
			auth.POST("/logout", s.routers.Logout, jwtMW)
		}

		api.GET("/users/me", s.routers.Me, jwtMW)

		// static segments win over :id, so published/featured/scheduled
		// and slug lookups stay reachable
		api.GET("/blogs", s.routers.ListBlogs)
		api.GET("/blogs/published", s.routers.ListPublishedBlogs)
		api.GET("/blogs/featured", s.routers.ListFeaturedBlogs)
		api.GET("/blogs/slug/:slug", s.routers.GetBlogBySlug)
		api.GET("/blogs/:id", s.routers.GetBlog)

		api.GET("/blogs/scheduled", s.routers.ListScheduledBlogs, jwtMW, s.routers.AdminOnly)
		api.POST("/blogs", s.routers.CreateBlog, jwtMW, s.routers.AdminOnly)
		api.PUT("/blogs/:id", s.routers.UpdateBlog, jwtMW, s.routers.AdminOnly)
		api.DELETE("/blogs/:id", s.routers.DeleteBlog, jwtMW, s.routers.AdminOnly)

		api.GET("/categories", s.routers.ListCategories)
		api.GET("/categories/:id", s.routers.GetCategory)
		api.POST("/categories", s.routers.CreateCategory, jwtMW, s.routers.AdminOnly)
		api.PUT("/categories/:id", s.routers.UpdateCategory, jwtMW, s.routers.AdminOnly)
		api.DELETE("/categories/:id", s.routers.DeleteCategory, jwtMW, s.routers.AdminOnly)

		api.GET("/authors", s.routers.ListAuthors)
		api.GET("/authors/:id", s.routers.GetAuthor)
		api.POST("/authors", s.routers.CreateAuthor, jwtMW, s.routers.AdminOnly)
		api.PUT("/authors/:id", s.routers.UpdateAuthor, jwtMW, s.routers.AdminOnly)
		api.DELETE("/authors/:id", s.routers.DeleteAuthor, jwtMW, s.routers.AdminOnly)
	}
}

// Echo exposes the underlying engine for tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}
