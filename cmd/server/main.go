package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"draftconv/internal/config"
	"draftconv/internal/handler"
	"draftconv/internal/middleware"
	"draftconv/internal/service/editor"
	"draftconv/internal/service/editor/plugin"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"sanitize_input", cfg.SanitizeInput,
		"trim_whitespace", cfg.TrimWhitespace,
	)

	// Plugin registration happens once; the registry is read-only afterwards
	registry, err := plugin.Default(logger)
	if err != nil {
		log.Fatalf("Failed to build plugin registry: %v", err)
	}
	logger.Info("plugin registry initialized", "types", registry.Types())

	converter := editor.NewConverter(registry, editor.Options{
		SanitizeInput:  cfg.SanitizeInput,
		TrimWhitespace: cfg.TrimWhitespace,
		Normalizer: editor.NormalizerOptions{
			MaxPasses: cfg.NormalizeMaxPasses,
			Strict:    cfg.StrictNormalization(),
		},
	}, logger)
	conversionService := editor.NewConversionService(converter, logger)
	convertHandler := handler.NewConvertHandler(conversionService, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", convertHandler.HealthCheck)
	mux.HandleFunc("GET /api/plugins", convertHandler.ListPlugins)
	mux.HandleFunc("POST /api/convert/html", convertHandler.ToHTML)
	mux.HandleFunc("POST /api/convert/document", convertHandler.ToDocument)
	mux.HandleFunc("POST /api/convert/markdown", convertHandler.ToMarkdown)
	mux.HandleFunc("POST /api/normalize", convertHandler.Normalize)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLogger → Recovery → Routes
	var handler http.Handler = mux
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestLogger(logger)(handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	handler = corsHandler.Handler(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
