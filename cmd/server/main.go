package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/sobanhassan/hisaabkitaab/internal/auth"
	"github.com/sobanhassan/hisaabkitaab/internal/config"
	"github.com/sobanhassan/hisaabkitaab/internal/ledger"
	"github.com/sobanhassan/hisaabkitaab/internal/middleware"
	"github.com/sobanhassan/hisaabkitaab/internal/server"
	"github.com/sobanhassan/hisaabkitaab/internal/storage/sqlite"
	"github.com/sobanhassan/hisaabkitaab/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)
	ledgerService := ledger.NewService(store)

	srv := server.New(ledgerService, authenticator, jwtManager)
	mux := srv.Routes()

	if err := registerStatic(mux, cfg.StaticPath); err != nil {
		slog.Error("Failed to set up static file serving", "error", err)
		os.Exit(1)
	}

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	// h2c lets browsers and proxies speak HTTP/2 without TLS in front.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// registerStatic serves the web frontend, falling back to index.html for
// unknown paths so client-side routing works.
func registerStatic(mux *http.ServeMux, staticPath string) error {
	staticDir, err := filepath.Abs(staticPath)
	if err != nil {
		return err
	}
	slog.Info("Serving static files", "path", staticDir)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	})
	return nil
}
