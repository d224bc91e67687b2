// Package rest is the HTTP API of the ufind server: a gin engine with the
// cookie authentication filter, the authorization gate and the auth and item
// handlers.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/ufind/internal/logging"
	"github.com/dmitrijs2005/ufind/internal/server/config"
	"github.com/dmitrijs2005/ufind/internal/server/models"
	"github.com/dmitrijs2005/ufind/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type authService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, username, email, password, roleName string) (*models.User, error)
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
	TokenTTL() time.Duration
}

type itemService interface {
	List(ctx context.Context, page models.PageRequest) (*models.Page, error)
	Search(ctx context.Context, query string, status *models.ItemStatus, page models.PageRequest) (*models.Page, error)
	Get(ctx context.Context, id string) (*models.Item, error)
	Register(ctx context.Context, in models.NewItem) (*models.Item, error)
	Claim(ctx context.Context, id string) (*models.Item, error)
}

type imageService interface {
	RequestUpload(ctx context.Context, itemID string) (*services.ImageUpload, error)
}

// CookieSettings controls the token cookie.
type CookieSettings struct {
	Name   string
	Secure bool
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	auth    authService
	items   itemService
	images  imageService
	cookie  CookieSettings
	origins []string
	engine  *gin.Engine
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, as authService, is itemService, ims imageService) *HTTPServer {
	s := &HTTPServer{
		address: cfg.EndpointAddrHTTP,
		logger:  l.With("module", "http_server"),
		auth:    as,
		items:   is,
		images:  ims,
		cookie:  CookieSettings{Name: cfg.CookieName, Secure: cfg.CookieSecure},
		origins: cfg.AllowedOrigins(),
	}
	s.engine = s.routes()
	return s
}

// Handler exposes the engine, mostly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	if len(s.origins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = s.origins
		corsConfig.AllowCredentials = true
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		r.Use(cors.New(corsConfig))
	}

	r.Use(s.authenticate())

	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", s.login)
			authRoutes.POST("/register", s.register)
			authRoutes.POST("/logout", s.logout)
			authRoutes.GET("/me", s.me)
		}

		itemRoutes := api.Group("/item")
		{
			itemRoutes.GET("", s.listItems)
			itemRoutes.GET("/search", s.searchItems)
			itemRoutes.GET("/:id", s.getItem)
			itemRoutes.POST("", s.registerItem)
			itemRoutes.PATCH("", s.claimItem)
			itemRoutes.POST("/:id/image", s.requestImageUpload)
		}
	}

	return r
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
