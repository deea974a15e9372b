// Package api exposes the city guide, the section tracker, the neighborhood
// finder and the theme preference over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/city-guide/internal/cityguide"
	"github.com/sells-group/city-guide/internal/model"
	"github.com/sells-group/city-guide/internal/neighborhood"
	"github.com/sells-group/city-guide/internal/theme"
)

// GuideProvider loads city guides.
type GuideProvider interface {
	FetchCityData(ctx context.Context, city string) cityguide.Result
	AskCityQuestion(ctx context.Context, city, query string) (*model.CityData, error)
}

// Deps are the services behind the router.
type Deps struct {
	Guide         GuideProvider
	Finder        *neighborhood.Finder
	Themes        *theme.Service
	DefaultFilter neighborhood.Filter
	CookieName    string
	CORSOrigins   []string
}

type server struct {
	Deps
}

// NewRouter builds the HTTP handler.
func NewRouter(d Deps) http.Handler {
	if d.CookieName == "" {
		d.CookieName = "cg_client"
	}
	if len(d.CORSOrigins) == 0 {
		d.CORSOrigins = []string{"*"}
	}
	s := &server{Deps: d}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", themeHintHeader},
		AllowCredentials: !slices.Contains(d.CORSOrigins, "*"),
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/sections", s.listSections)
		r.Post("/layout/active", s.activeSection)

		r.Get("/cities/{city}", s.getCity)
		r.Post("/cities/{city}/ask", s.askCity)

		r.Get("/neighborhoods", s.listNeighborhoods)
		r.Get("/neighborhoods/map", s.neighborhoodMap)
		r.Post("/neighborhoods/search", s.searchNeighborhoods)
		r.Get("/neighborhoods/{id}", s.getNeighborhood)

		r.Get("/theme", s.getTheme)
		r.Post("/theme/toggle", s.toggleTheme)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
