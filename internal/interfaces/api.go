package interfaces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kayz/fabula/internal/appconfig"
	"github.com/kayz/fabula/internal/engine"
)

// API is the headless JSON front end: the same chat endpoint as the web
// interface, without the HTML shell, with optional bearer auth.
type API struct {
	cfg *appconfig.APIInterfaceConfig
}

func NewAPI(cfg *appconfig.APIInterfaceConfig) *API {
	return &API{cfg: cfg}
}

func (s *API) Run(ctx context.Context, e *engine.Engine) error {
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler: s.Handler(e),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *API) Handler(e *engine.Engine) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		if !s.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
			return
		}
		req.Text = strings.TrimSpace(req.Text)
		if req.Text == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
			return
		}

		reply, err := e.Query(r.Context(), req.Text)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, chatResponse{Text: reply})
	})
	return mux
}

func (s *API) authorized(r *http.Request) bool {
	if s.cfg.AuthToken == nil || *s.cfg.AuthToken == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+*s.cfg.AuthToken
}
