package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxRequestBytes はリクエストボディの上限です
const maxRequestBytes = 200 << 10

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	OK     bool    `json:"ok"`
	Uptime float64 `json:"uptime"`
}

// NewRouter はAPI全体のルーティングを組み立てます
// 販売実績のハンドラーはConnectのプロシージャパスと、互換用の POST /seller-sales の両方にマウントします
func NewRouter(log *slog.Logger, salesPath string, sales http.Handler, startedAt time.Time) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(cors)
	r.Use(middleware.RequestSize(maxRequestBytes))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{OK: true, Uptime: time.Since(startedAt).Seconds()})
	})

	r.Handle(salesPath, sales)
	r.Method(http.MethodPost, "/seller-sales", sales)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		log.Warn("unhandled route", slog.String("path", req.URL.Path))
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	})

	return r
}

// cors はすべてのオリジンからのアクセスを許可し、プリフライトには204を返します
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
