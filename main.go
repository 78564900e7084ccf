package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-explorer/api"
	gameapi "github.com/beka-birhanu/vinom-explorer/api/game"
	api_i "github.com/beka-birhanu/vinom-explorer/api/i"
	"github.com/beka-birhanu/vinom-explorer/api/identity"
	"github.com/beka-birhanu/vinom-explorer/config"
	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/beka-birhanu/vinom-explorer/game/maze"
	mp "github.com/beka-birhanu/vinom-explorer/game/msgpack_encoder"
	"github.com/beka-birhanu/vinom-explorer/infrastruture/repo"
	"github.com/beka-birhanu/vinom-explorer/infrastruture/sessionstore"
	"github.com/beka-birhanu/vinom-explorer/infrastruture/token"
	"github.com/beka-birhanu/vinom-explorer/logger"
	"github.com/beka-birhanu/vinom-explorer/service"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	cfg               config.Config
	redisClient       *redis.Client
	mongoClient       *mongo.Client
	sessionStore      i.SessionStore
	runRepo           *repo.RunRepo
	sessionManager    i.SessionManager
	jwtTokenizer      i.Tokenizer
	sessionAuth       i.SessionAuthenticator
	sessionController api_i.Controller
	router            *api.Router
	appLogger         *logger.Logger
)

func fatal(format string, args ...interface{}) {
	appLogger.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

func initConfig() {
	var err error
	if cfg, err = config.Load(); err != nil {
		fatal("Loading configuration: %v", err)
	}
	appLogger.Info("Configuration loaded")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatal("Redis ping failed: %v", err)
	}
	appLogger.Info("Connected to Redis")
}

func initMongo(ctx context.Context) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI())
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		fatal("Failed to connect to MongoDB: %v", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatal("MongoDB ping failed: %v", err)
	}
	appLogger.Info("Connected to MongoDB")
}

func initSessionStore() {
	var err error
	sessionStore, err = sessionstore.NewRedisSessionStore(redisClient, cfg.SessionTTLSeconds, "explorer")
	if err != nil {
		fatal("Creating session store: %v", err)
	}
	appLogger.Info("Session store initialized")
}

func initRunRepo(ctx context.Context) {
	runRepo = repo.NewRunRepo(mongoClient, cfg.DBName, "runs")
	if err := runRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Warning(fmt.Sprintf("Creating run indexes: %v", err))
	}
	appLogger.Info("Run repository initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		fatal("Creating session manager logger: %v", err)
	}

	sessionManager, err = service.NewSessionManager(&service.Config{
		Store:   sessionStore,
		Runs:    runRepo,
		Encoder: &mp.Msgpack{},
		MazeFactory: func(width, height int, seed int64) (game.Maze, error) {
			m, err := maze.New(width, height, seed)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		LayoutFactory: func(l game.MazeLayout) (game.Maze, error) {
			m, err := maze.NewFromLayout(l)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		Settings: cfg.Engine,
		Logger:   sessionLogger,
	})
	if err != nil {
		fatal("Creating session manager: %v", err)
	}
	appLogger.Info("Session manager initialized")
}

func initAuth() {
	jwtTokenizer = token.NewJwtService(cfg.JWTSecret, cfg.JWTIssuer)
	sessionAuth = service.NewSessionAuth(jwtTokenizer, time.Duration(cfg.SessionTTLSeconds)*time.Second)
	appLogger.Info("Session auth initialized")
}

func initSessionController() {
	controllerLogger, err := logger.New("API", config.ColorBlue, os.Stdout)
	if err != nil {
		fatal("Creating controller logger: %v", err)
	}
	sessionController = gameapi.NewSessionController(sessionManager, sessionAuth, controllerLogger, &gameapi.Options{
		StreamTick:     time.Duration(cfg.StreamTickMS) * time.Millisecond,
		AllowedOrigins: cfg.CORSOrigins,
	})
	appLogger.Info("Session controller initialized")
}

func initRouter() {
	gin.SetMode(cfg.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", cfg.HostIP, cfg.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{sessionController},
		AuthorizationMiddleware: identity.Authoriz(sessionAuth),
		AllowedOrigins:          cfg.CORSOrigins,
	})
	appLogger.Info("Router initialized")
}

func main() {
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	initConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initRedis(ctx)
	defer redisClient.Close()
	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initSessionStore()
	initRunRepo(ctx)
	initSessionManager()
	initAuth()
	initSessionController()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
	}
}
