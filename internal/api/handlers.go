package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/city-guide/internal/cityguide"
	"github.com/sells-group/city-guide/internal/model"
	"github.com/sells-group/city-guide/internal/neighborhood"
	"github.com/sells-group/city-guide/internal/section"
	"github.com/sells-group/city-guide/internal/theme"
)

const themeHintHeader = "Sec-CH-Prefers-Color-Scheme"

// --- Sections ---

func (s *server) listSections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, section.Entries())
}

type layoutRequest struct {
	Order   []string         `json:"order,omitempty"`
	Anchors []section.Anchor `json:"anchors"`
	ScrollY int              `json:"scroll_y"`
	Target  string           `json:"target,omitempty"`
}

type layoutResponse struct {
	Active      string `json:"active"`
	ShowSidebar bool   `json:"show_sidebar"`
	ScrollTo    *int   `json:"scroll_to,omitempty"`
}

// defaultOrder is the section order of the bundled guide, used when a client
// does not send the order of the city it rendered.
func defaultOrder() []string {
	fb, err := cityguide.Fallback()
	if err != nil {
		return section.IDs()
	}
	return section.SectionIDs(section.Build(fb))
}

func (s *server) activeSection(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	order := req.Order
	if len(order) == 0 {
		order = defaultOrder()
	}

	layout := section.NewLayout(order, req.Anchors)
	view := layout.Evaluate(req.ScrollY)
	resp := layoutResponse{Active: view.Active, ShowSidebar: view.ShowSidebar}
	if req.Target != "" {
		if off, ok := layout.ScrollTarget(req.Target); ok {
			resp.ScrollTo = &off
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- City guide ---

type cityResponse struct {
	Source   cityguide.Source  `json:"source"`
	City     *model.CityData   `json:"city"`
	Sections []section.Section `json:"sections"`
	Order    []string          `json:"order"`
}

func (s *server) getCity(w http.ResponseWriter, r *http.Request) {
	res := s.Guide.FetchCityData(r.Context(), chi.URLParam(r, "city"))
	sections := section.Build(res.Data)
	writeJSON(w, http.StatusOK, cityResponse{
		Source:   res.Source,
		City:     res.Data,
		Sections: sections,
		Order:    section.SectionIDs(sections),
	})
}

func (s *server) askCity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := s.Guide.AskCityQuestion(r.Context(), chi.URLParam(r, "city"), req.Query)
	if errors.Is(err, cityguide.ErrEmptyQuery) {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to get an answer, please try again")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// --- Neighborhoods ---

func (s *server) filterFromQuery(r *http.Request) (neighborhood.Filter, error) {
	q := r.URL.Query()
	f := s.DefaultFilter
	if v := q.Get("sort"); v != "" {
		f.Sort = neighborhood.ParseSortKey(v)
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"max_commute", &f.MaxCommute},
		{"max_rent", &f.MaxRent},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New(p.name + " must be a non-negative integer")
		}
		*p.dst = n
	}
	return f, nil
}

type rankedNeighborhood struct {
	Rank  int                      `json:"rank"`
	Style neighborhood.MarkerStyle `json:"style"`
	model.Neighborhood
}

type rankingResponse struct {
	Filter        neighborhood.Filter  `json:"filter"`
	Neighborhoods []rankedNeighborhood `json:"neighborhoods"`
}

func (s *server) listNeighborhoods(w http.ResponseWriter, r *http.Request) {
	f, err := s.filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ranked := s.Finder.Catalog().Rank(f)
	out := make([]rankedNeighborhood, len(ranked))
	for i, n := range ranked {
		out[i] = rankedNeighborhood{Rank: i + 1, Style: neighborhood.Style(n.Grade), Neighborhood: n}
	}
	writeJSON(w, http.StatusOK, rankingResponse{Filter: f, Neighborhoods: out})
}

func (s *server) neighborhoodMap(w http.ResponseWriter, r *http.Request) {
	f, err := s.filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var office *model.OfficeLocation
	if addr := strings.TrimSpace(r.URL.Query().Get("address")); addr != "" {
		res, err := s.Finder.Search(r.Context(), addr)
		if err != nil {
			zap.L().Warn("map office search failed", zap.String("address", addr), zap.Error(err))
			writeError(w, http.StatusBadGateway, "office search failed")
			return
		}
		office = &res.Office
	}

	fc := neighborhood.MapFeatures(office, s.Finder.Catalog().Rank(f))
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		zap.L().Warn("encode geojson", zap.Error(err))
	}
}

func (s *server) getNeighborhood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	n, ok := s.Finder.Catalog().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "neighborhood not found")
		return
	}
	writeJSON(w, http.StatusOK, rankedNeighborhood{Style: neighborhood.Style(n.Grade), Neighborhood: n})
}

func (s *server) searchNeighborhoods(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.Finder.Search(r.Context(), req.Address)
	if errors.Is(err, neighborhood.ErrEmptyAddress) {
		writeError(w, http.StatusBadRequest, "address is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "office search failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- Theme ---

type themeResponse struct {
	Theme string `json:"theme"`
	Dark  bool   `json:"dark"`
}

// clientID returns the caller's id cookie, issuing one when absent.
func (s *server) clientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func prefersDark(r *http.Request) bool {
	if v := r.URL.Query().Get("prefers"); v != "" {
		return theme.PrefersDark(v)
	}
	return theme.PrefersDark(r.Header.Get(themeHintHeader))
}

func (s *server) getTheme(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Accept-CH", themeHintHeader)
	id := s.clientID(w, r)
	st, err := s.Themes.Get(r.Context(), id, prefersDark(r))
	if err != nil {
		zap.L().Error("load theme", zap.String("client_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load theme")
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: st.Name(), Dark: st.Dark})
}

func (s *server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	id := s.clientID(w, r)
	st, err := s.Themes.Toggle(r.Context(), id, prefersDark(r))
	if err != nil {
		zap.L().Error("toggle theme", zap.String("client_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save theme")
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: st.Name(), Dark: st.Dark})
}
