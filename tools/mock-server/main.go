// Package main implements a mock CSBlueGem API server for local development.
// It serves deterministic, generated sales history and pattern statistics on
// /search, /patterndata and /pricecheck so the CLI and watches can run
// without reaching the real API.
//
//	go run ./tools/mock-server -port 8089
//	bluegem --base-url http://localhost:8089 search karambit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/donaldgifford/bluegem/pkg/logger"
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	seed := flag.Uint64("seed", 1, "seed for the generated market data")
	perItem := flag.Int("sales", 300, "number of sales generated per item")
	logLevel := flag.String("log-level", "debug", "log level")
	flag.Parse()

	log := logger.NewWithWriter(os.Stdout, *logLevel, "text")

	m := &market{
		seed:    *seed,
		anchor:  time.Now().UTC().Truncate(time.Hour),
		perItem: *perItem,
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Info("starting mock CSBlueGem server", "addr", addr, "seed", *seed, "sales_per_item", *perItem)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(log, newMux(log, m)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}
