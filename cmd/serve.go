package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumenotes/nugget-cli/internal/extract"
	"github.com/lumenotes/nugget-cli/internal/resilience"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP extraction endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := newService(cfg)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(svc),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

type extractRequest struct {
	Content     string   `json:"content"`
	Prompt      string   `json:"prompt"`
	Profile     string   `json:"profile"`
	Types       []string `json:"types"`
	Temperature *float64 `json:"temperature"`
}

func newRouter(svc *extract.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(requestID)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/extract", func(w http.ResponseWriter, req *http.Request) {
		var body extractRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.Content == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content is required"})
			return
		}

		ereq := extract.Request{
			Content:     body.Content,
			Prompt:      body.Prompt,
			Temperature: body.Temperature,
		}
		if ereq.Prompt == "" {
			prompt, temp, err := resolveProfile(body.Profile)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			ereq.Prompt = prompt
			if ereq.Temperature == nil {
				ereq.Temperature = temp
			}
		}

		types, err := parseTypes(body.Types)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		ereq.Types = types

		result, err := svc.Extract(req.Context(), ereq)
		if err != nil {
			status := http.StatusBadGateway
			if resilience.Classify(err) == resilience.ClassAuthConfig {
				status = http.StatusBadRequest
			}
			zap.L().Error("extraction request failed",
				zap.String("request_id", req.Header.Get(requestIDHeader)),
				zap.Error(err),
			)
			writeJSON(w, status, map[string]string{"error": "extraction failed"})
			return
		}

		writeJSON(w, http.StatusOK, result)
	})

	return r
}

// resolveProfile maps a named profile to its instruction, falling back to the
// built-in default when no profile is given.
func resolveProfile(name string) (string, *float64, error) {
	if name == "" {
		return extract.DefaultPrompt, nil, nil
	}
	if cfg.Extract.ProfilePath == "" {
		return "", nil, eris.New("profile requires extract.profile_path in config")
	}
	profiles, err := extract.LoadProfiles(cfg.Extract.ProfilePath)
	if err != nil {
		return "", nil, err
	}
	p, ok := profiles[name]
	if !ok {
		return "", nil, eris.Errorf("unknown profile %q", name)
	}
	return p.Instruction, p.Temperature, nil
}

const requestIDHeader = "X-Request-Id"

// requestID tags each request with a UUID for log correlation, honoring one
// supplied by the caller.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			req.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, req)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
