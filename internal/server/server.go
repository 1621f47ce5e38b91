package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/chatrooms/internal/config"
	"github.com/thereayou/chatrooms/internal/database"
	"github.com/thereayou/chatrooms/internal/handlers"
	"github.com/thereayou/chatrooms/internal/middleware"
	"github.com/thereayou/chatrooms/internal/services"
	ws "github.com/thereayou/chatrooms/internal/websocket"
	"github.com/thereayou/chatrooms/pkg/auth"
)

const redisPingTimeout = 5 * time.Second

type Server struct {
	Config     *config.Config
	Log        *slog.Logger
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
	Broker     *services.Broker

	httpServer *http.Server
}

// NewServer opens the database (and redis, when REDIS_URL is set) and wires
// the gateway on top of them.
func NewServer(cfg *config.Config, log *slog.Logger) (*Server, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = db.Close()
			_ = rdb.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	return New(cfg, log, db, rdb), nil
}

// New builds the server around an already opened store. rdb may be nil.
func New(cfg *config.Config, log *slog.Logger, db *database.Database, rdb *redis.Client) *Server {
	if cfg.Log.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := ws.NewHub(log.With("component", "hub"))
	chat := services.NewChatService(db, db, log.With("component", "chat"))
	broker := services.NewBroker(db, hub, cfg.StoreTimeout, log.With("component", "broker"))

	var jwtMgr *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtMgr = auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log))

	messageH := handlers.NewMessageHandler(broker, log)
	APIEndpoints(router, Handlers{
		Rooms:    handlers.NewRoomHandler(chat, log),
		Messages: handlers.NewHTTPMessageHandler(chat, broker, log),
		Health:   handlers.NewHealthHandler(db, log),
		WS: handlers.NewWebSocketHandler(hub, messageH, cfg.Origins, ws.ClientOptions{
			SendBuffer:     cfg.WSSendBuffer,
			MaxMessageSize: cfg.WSMaxMessageSize,
		}, log),
	}, gates(cfg, jwtMgr, rdb))

	s := &Server{
		Config:     cfg,
		Log:        log,
		Router:     router,
		DB:         db,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Broker:     broker,
	}
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler is the router behind the CORS policy for the configured origins.
func (s *Server) Handler() http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   s.Config.Origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	})(s.Router)
}

// Run blocks until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.Log.Info("server starting", "port", s.Config.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server run: %w", err)
	}
	return nil
}

// Shutdown closes live connections, which http.Server does not track once
// hijacked, and then drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Hub.Shutdown()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.Log.Info("server stopped")
	return nil
}

func (s *Server) Close() error {
	var errList []error
	if s.Redis != nil {
		errList = append(errList, s.Redis.Close())
	}
	errList = append(errList, s.DB.Close())
	return errors.Join(errList...)
}
