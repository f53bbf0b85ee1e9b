package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/KubeRPG_Go/internal/account"
	"github.com/osse101/KubeRPG_Go/internal/dungeon"
	"github.com/osse101/KubeRPG_Go/internal/handler"
	"github.com/osse101/KubeRPG_Go/internal/logger"
	"github.com/osse101/KubeRPG_Go/internal/metrics"
	"github.com/osse101/KubeRPG_Go/internal/sse"
	"github.com/osse101/KubeRPG_Go/internal/village"
)

// Server serves the HTTP API and the presentation streams
type Server struct {
	httpServer *http.Server
}

// NewServer wires every route. storage may be nil for in-memory storage.
func NewServer(
	port int,
	apiKey string,
	trustedProxies []string,
	storage handler.Pinger,
	accounts account.Service,
	villageDispatcher *village.Dispatcher,
	dungeons dungeon.Service,
	hub *sse.Hub,
) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(storage))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", handler.HandleRegisterAccount(accounts))
			r.Get("/", handler.HandleListAccounts(accounts))
			r.Route("/{"+handler.ParamPseudonym+"}", func(r chi.Router) {
				r.Get("/", handler.HandleGetAccount(accounts))
				r.Get("/stats", handler.HandleAccountStats(accounts))
				r.Post("/equip", handler.HandleEquip(accounts))
				r.Post("/unequip", handler.HandleUnequip(accounts))
				r.Post("/forge", handler.HandleForge(accounts))
			})
		})

		r.Route("/village", func(r chi.Router) {
			r.Get("/", handler.HandleGetVillage(villageDispatcher))
			r.Post("/select", handler.HandleSelectAccount(villageDispatcher))
			r.Post("/join", handler.HandleJoinParty(villageDispatcher))
			r.Post("/leave", handler.HandleLeaveParty(villageDispatcher))
			r.Post("/move", handler.HandleMove(villageDispatcher))
			r.Post("/equip", handler.HandleVillageEquip(villageDispatcher))
			r.Post("/interact", handler.HandleInteract(villageDispatcher))
		})

		r.Route("/dungeon", func(r chi.Router) {
			r.Get("/", handler.HandleGetDungeon(dungeons))
			r.Post("/start", handler.HandleStartDungeon(dungeons, villageDispatcher.Session()))
			r.Post("/advance", handler.HandleAdvanceDungeon(dungeons))
			r.Post("/continue", handler.HandleContinueDungeon(dungeons))
		})

		r.Get("/stream", sse.Handler(hub))
		r.Get("/ws", sse.WebsocketHandler(hub))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Stop; a clean shutdown is not reported as an error
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, LogFieldAddr, s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		start := time.Now()
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldRemoteAddr, r.RemoteAddr,
			LogFieldContentLength, r.ContentLength,
			LogFieldUserAgent, r.UserAgent())
		log.Debug(LogMsgRequestHeaders, LogFieldHeaders, sanitizeHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		log.Info(LogMsgRequestCompleted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldStatus, rw.statusCode,
			LogFieldDurationMS, time.Since(start).Milliseconds())
	})
}

// sanitizeHeaders copies h with credentials redacted
func sanitizeHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
		} else {
			out[k] = v
		}
	}
	return out
}
