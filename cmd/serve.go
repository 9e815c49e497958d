package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexjj/sota-us-counties/internal/browse"
	"github.com/alexjj/sota-us-counties/internal/dataset"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the joined summit data as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pipeline, cleanup, err := newPipeline(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer cleanup()

		// Warm the memo so startup fails fast on unreadable sources.
		if _, err := pipeline.Rows(ctx); err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(pipeline),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the API routes over the pipeline. The pipeline memoizes on
// source content, so per-request Rows calls are cheap and pick up file changes.
func newRouter(pipeline *dataset.Pipeline) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/summits", func(w http.ResponseWriter, req *http.Request) {
		rows, err := pipeline.Rows(req.Context())
		if err != nil {
			zap.L().Error("load summit rows", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "data unavailable"})
			return
		}

		// Any min_points value is a valid filter; unparsable means unset.
		minPoints, _ := strconv.Atoi(req.URL.Query().Get("min_points"))

		filtered := browse.Apply(rows, browse.Filter{
			Search:    req.URL.Query().Get("search"),
			County:    req.URL.Query().Get("county"),
			MinPoints: minPoints,
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"count":   len(filtered),
			"summits": filtered,
		})
	})

	r.Get("/api/counties", func(w http.ResponseWriter, req *http.Request) {
		rows, err := pipeline.Rows(req.Context())
		if err != nil {
			zap.L().Error("load summit rows", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "data unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"counties": browse.Vocabulary(rows)})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
