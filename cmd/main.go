package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/syncify/internal/cache"
	"github.com/sbilibin2017/syncify/internal/jwt"
	"github.com/sbilibin2017/syncify/internal/logger"
	"github.com/sbilibin2017/syncify/internal/middlewares"
	"github.com/sbilibin2017/syncify/internal/repositories"
	"github.com/sbilibin2017/syncify/internal/server"
	"github.com/sbilibin2017/syncify/internal/services"
	"github.com/sbilibin2017/syncify/internal/spotify"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config is the whole process configuration.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisTokenTTL     time.Duration

	JWTSecretKey string
	JWTExp       time.Duration

	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURI  string
	SpotifyAuthURL      string
	SpotifyTokenURL     string
	SpotifyBaseURL      string
	SpotifyTimeout      time.Duration
	SpotifyRateLimit    float64

	KafkaBrokers []string
	KafkaTopic   string

	CORSAllowedOrigin string
}

// @title Syncify API
// @version 1.0.0
// @description Users, friendships, session tokens and Spotify account linking
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, JWT, Spotify and Kafka configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getSeconds := func(key, defaultValue string) (time.Duration, error) {
		v, err := getInt(key, defaultValue)
		return time.Duration(v) * time.Second, err
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.RedisTokenTTL, err = getSeconds("REDIS_TOKEN_TTL_SECOND", "2592000"); err != nil {
		return
	}

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExp, err = getSeconds("JWT_EXP_SECOND", "3600"); err != nil {
		return
	}

	// Spotify config
	cfg.SpotifyClientID = getEnv("SPOTIFY_CLIENT_ID", "")
	cfg.SpotifyClientSecret = getEnv("SPOTIFY_CLIENT_SECRET", "")
	cfg.SpotifyRedirectURI = getEnv("SPOTIFY_REDIRECT_URI", "http://localhost:8080/spotify/callback")
	cfg.SpotifyAuthURL = getEnv("SPOTIFY_AUTH_URL", spotify.DefaultAuthURL)
	cfg.SpotifyTokenURL = getEnv("SPOTIFY_TOKEN_URL", spotify.DefaultTokenURL)
	cfg.SpotifyBaseURL = getEnv("SPOTIFY_BASE_URL", spotify.DefaultBaseURL)
	if cfg.SpotifyTimeout, err = getSeconds("SPOTIFY_HTTP_TIMEOUT_SECOND", "10"); err != nil {
		return
	}
	if cfg.SpotifyRateLimit, err = strconv.ParseFloat(getEnv("SPOTIFY_RATE_LIMIT_PER_SECOND", "10"), 64); err != nil {
		err = fmt.Errorf("SPOTIFY_RATE_LIMIT_PER_SECOND: %w", err)
		return
	}

	// Kafka config
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "syncify.events")

	cfg.CORSAllowedOrigin = getEnv("CORS_ALLOWED_ORIGIN", "")

	return
}

// run initializes the logger, database, Redis, Kafka and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	log := logger.Log
	defer log.Sync()
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}
	if err := repositories.Migrate(ctx, db); err != nil {
		return err
	}

	// Connect to Redis
	rc := cache.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rc.Connect(ctx); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rc.Close()

	// Kafka writer, events are disabled without brokers
	var writer services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		writer = &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
		log.Infof("Publishing events to Kafka topic %s", cfg.KafkaTopic)
	}
	events := services.NewEventPublisher(writer)
	defer events.Close()

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.JWTExp))

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, middlewares.GetTxFromContext)
	tokenRepo := repositories.NewTokenRepository(db, middlewares.GetTxFromContext, tokens)

	// Initialize Spotify clients
	authClient := spotify.NewAuthClient(spotify.Config{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		RedirectURL:  cfg.SpotifyRedirectURI,
		AuthURL:      cfg.SpotifyAuthURL,
		TokenURL:     cfg.SpotifyTokenURL,
		Timeout:      cfg.SpotifyTimeout,
	})
	apiClient := spotify.NewAPIClient(cfg.SpotifyBaseURL, cfg.SpotifyTimeout, cfg.SpotifyRateLimit)

	// Initialize services
	validator := services.NewUserValidator(userRepo)
	userService := services.NewUserService(userRepo, userRepo, userRepo, validator, events)
	authService := services.NewAuthService(userRepo, userRepo, tokenRepo, tokens, validator, events)
	spotifyService := services.NewSpotifyService(authClient, apiClient, rc, userRepo, userRepo,
		services.WithRefreshTokenTTL(cfg.RedisTokenTTL))

	// Setup router
	r := server.NewRouter(server.Deps{
		DB:            db,
		Log:           log,
		Tokener:       tokens,
		Users:         userService,
		Auth:          authService,
		Spotify:       spotifyService,
		SwaggerURL:    fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort),
		AllowedOrigin: cfg.CORSAllowedOrigin,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
