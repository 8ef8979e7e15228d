package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ironsheep/paint-study-mcp/internal/imaging"
)

// maxRPCBody bounds a JSON-RPC request over HTTP.
const maxRPCBody = 16 << 20

// HTTPHandler exposes the same dispatcher over HTTP:
//
//	POST /rpc                  JSON-RPC request, same methods as stdio
//	GET  /image/displayed.png  the displayed image
//	GET  /image/original.png   the original image
//	GET  /healthz              liveness
func (s *Server) HTTPHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"loaded": s.session.State().Loaded,
		})
	})
	r.Post("/rpc", s.serveRPC)
	r.Route("/image", func(r chi.Router) {
		r.Get("/displayed.png", s.serveImage(s.session.Displayed))
		r.Get("/original.png", s.serveImage(s.session.Original))
	})

	return r
}

func (s *Server) serveRPC(w http.ResponseWriter, r *http.Request) {
	var req MCPRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRPCBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, s.errorResponse(nil, codeParseError, "Parse error", err.Error()))
		return
	}

	resp := s.handleRequest(&req)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) serveImage(get func() (*imaging.PixelBuffer, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		buf, err := get()
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		data, err := imaging.EncodePNG(buf)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(data)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenHTTP serves HTTPHandler on addr until ctx is cancelled.
func (s *Server) ListenHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http transport listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
