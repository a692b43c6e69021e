// Command web initializes the application and starts the HTTP server.
// Configuration is provided via environment variables, optionally loaded
// from a .env file. The server serves the JSON search/history API and
// Prometheus metrics.

package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"Tune-Preview-Go/pkg/db"
	"Tune-Preview-Go/pkg/handlers"
	"Tune-Preview-Go/pkg/search"
)

// envDefault returns the value of the environment variable key, or fallback
// when it is unset or empty.
func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newLogger builds the application logger from LOG_LEVEL.
func newLogger() *log.Logger {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if lvl, err := log.ParseLevel(envDefault("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// main configures application dependencies and starts the HTTP server.
func main() {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("loading .env")
	}
	logger := newLogger()

	// DATABASE_PATH allows the SQLite file to be customised. It defaults
	// to a file in the working directory.
	database, err := db.New(envDefault("DATABASE_PATH", "tunepreview.db"))
	if err != nil {
		logger.WithError(err).Fatal("db init")
	}
	defer database.Close()

	// CORS_PROXY overrides the public proxy the Deezer client routes
	// through, for deployments running their own.
	agg := search.NewDefault(os.Getenv("CORS_PROXY"), logger)

	app := &handlers.Application{Search: agg, DB: database, Log: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", app.SearchJSON)
	mux.HandleFunc("/api/albums", app.AlbumsJSON)
	mux.HandleFunc("/api/albums/tracks", app.AlbumTracksJSON)
	mux.HandleFunc("/api/albums/details", app.AlbumDetailsJSON)
	mux.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			app.AddHistoryJSON(w, r)
		} else {
			app.HistoryJSON(w, r)
		}
	})
	mux.Handle("/metrics", promhttp.Handler())

	addr := envDefault("ADDR", ":4000")
	logger.WithField("addr", addr).Info("starting server")
	if err := http.ListenAndServe(addr, handlers.SecurityHeaders(mux)); err != nil {
		logger.WithError(err).Fatal("http server error")
	}
}
