package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/wsdiff/wsdiff/pkg/cache"
	"github.com/wsdiff/wsdiff/pkg/errors"
	"github.com/wsdiff/wsdiff/pkg/observability"
	"github.com/wsdiff/wsdiff/pkg/pipeline"
	"github.com/wsdiff/wsdiff/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	storeKind string
	mongoURI  string
	mongoDB   string
	redisAddr string
	ttlHours  int
}

// serveCommand creates the serve command: an HTTP server that renders diffs
// on demand and keeps the results addressable by ID.
func (c *CLI) serveCommand() *cobra.Command {
	cfg := c.Config.Serve
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an HTTP server that renders and stores diffs",
		Long: `Start an HTTP server exposing the diff pipeline:

  POST   /diffs        render a diff from a JSON request, store it, return its ID
  GET    /diffs        list stored diffs (newest first)
  GET    /diffs/{id}   fetch a stored diff as HTML
  DELETE /diffs/{id}   remove a stored diff
  GET    /healthz      liveness probe

Input paths in requests are resolved on the server's filesystem. Stored
documents live in memory by default; pass --store mongo for persistence
across restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", orStr(cfg.Addr, ":8080"), "listen address")
	cmd.Flags().StringVar(&opts.storeKind, "store", orStr(cfg.Store, "memory"), "document store backend (memory, mongo)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", orStr(cfg.MongoURI, "mongodb://localhost:27017"), "MongoDB connection string for --store mongo")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", orStr(cfg.MongoDB, "wsdiff"), "MongoDB database name for --store mongo")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", cfg.Redis, "Redis address for the render cache (default: file cache)")
	cmd.Flags().IntVar(&opts.ttlHours, "ttl", orInt(cfg.TTLHours, 24), "hours stored diffs stay retrievable (0 = forever)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	st, err := c.newStore(ctx, opts)
	if err != nil {
		return err
	}

	var cch cache.Cache
	keyer := cache.NewDefaultKeyer()
	if opts.redisAddr != "" {
		cch, err = cache.NewRedisCache(ctx, opts.redisAddr)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		// The Redis instance may be shared; keep serve keys in their
		// own namespace.
		keyer = cache.NewScopedKeyer(keyer, "serve:")
	} else {
		cch, err = newCache(false)
		if err != nil {
			return err
		}
	}
	defer cch.Close()

	srv := &server{
		runner: pipeline.NewRunner(cch, keyer, c.Logger),
		store:  st,
		ttl:    time.Duration(opts.ttlHours) * time.Hour,
		logger: c.Logger,
	}

	r := chi.NewRouter()
	r.Use(srv.observe)
	r.Get("/healthz", srv.handleHealth)
	r.Route("/diffs", func(r chi.Router) {
		r.Post("/", srv.handleCreate)
		r.Get("/", srv.handleList)
		r.Get("/{id}", srv.handleGet)
		r.Delete("/{id}", srv.handleDelete)
	})

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Sweep expired documents in the background.
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go srv.sweep(sweepCtx, time.Hour)

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening", "addr", opts.addr, "store", opts.storeKind)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		c.Logger.Warn("forced shutdown", "err", err)
	}
	return srv.store.Close(shutdownCtx)
}

// newStore builds the document store selected by --store.
func (c *CLI) newStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	switch opts.storeKind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		st, err := store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return nil, fmt.Errorf("connect to mongodb: %w", err)
		}
		return st, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFlag,
			"unknown store backend %q (must be one of: memory, mongo)", opts.storeKind)
	}
}

// =============================================================================
// Server
// =============================================================================

// server holds the handler dependencies for serve mode.
type server struct {
	runner *pipeline.Runner
	store  store.Store
	ttl    time.Duration
	logger *log.Logger
}

// sweep periodically removes expired documents from the store.
func (s *server) sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("store cleanup failed", "err", err)
			}
		}
	}
}

// observe is middleware wiring requests into the observability hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(withLogger(r.Context(), s.logger))
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path,
			rec.status, time.Since(start))
	})
}

// statusRecorder captures the response status for the observability hooks.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// =============================================================================
// Handlers
// =============================================================================

// createResponse is the JSON body returned by POST /diffs.
type createResponse struct {
	ID      string `json:"id"`
	Files   int    `json:"files"`
	Changed int    `json:"changed"`
	Skipped int    `json:"skipped"`
	Cached  bool   `json:"cached"`
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	// Serve mode always stores complete documents.
	opts.Mode = pipeline.ModeDocument
	opts.Logger = loggerFromContext(r.Context())
	opts.Progress = nil

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}

	doc := store.New(opts.Title, opts.OldPath, opts.NewPath, result.HTML, s.ttl)
	doc.Files = result.Stats.FileCount
	doc.Changed = result.Stats.ChangedCount
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, createResponse{
		ID:      doc.ID,
		Files:   result.Stats.FileCount,
		Changed: result.Stats.ChangedCount,
		Skipped: result.Stats.SkippedCount,
		Cached:  result.CacheInfo.DocumentHit,
	})
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Get(r.Context(), id)
	if err == store.ErrExpired {
		s.writeError(w, r, http.StatusGone, fmt.Errorf("diff %s has expired", id))
		return
	}
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if doc == nil {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("diff %s not found", id))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.HTML)
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	docs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if docs == nil {
		docs = []*store.Document{}
	}
	s.writeJSON(w, http.StatusOK, docs)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Response Helpers
// =============================================================================

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", "err", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= 500 {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusForError maps pipeline errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidFlag):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeInvalidPath),
		errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// orStr returns v unless it is empty, then fallback.
func orStr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
