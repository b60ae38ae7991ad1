package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/srliao/wfcalc/internal/report"
	"github.com/srliao/wfcalc/pkg/combat"
	"go.uber.org/zap"
)

//Server serves hit calculations over json
type Server struct {
	Log *zap.SugaredLogger
	lib *combat.Library
}

//HitRequest describes one hit. Mods are looked up in the library, extra mods
//are used as given
type HitRequest struct {
	Label  string                        `json:"label"`
	Damage map[combat.DamageType]float64 `json:"damage"`
	Mods   []string                      `json:"mods"`
	Extra  []combat.Mod                  `json:"extra"`
	Enemy  combat.EnemyProfile           `json:"enemy"`
}

func New(lib *combat.Library, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{Log: log, lib: lib}
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/mods", s.listMods).Methods(http.MethodGet)
	r.HandleFunc("/api/mods/{name}", s.getMod).Methods(http.MethodGet)
	r.HandleFunc("/api/hit", s.hit).Methods(http.MethodPost)
	r.HandleFunc("/api/hit/chart", s.chart).Methods(http.MethodPost)
	r.HandleFunc("/api/status-chance", s.statusChance).Methods(http.MethodPost)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	return withCORS(r)
}

func (s *Server) listMods(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if s.lib != nil {
		names = append(names, s.lib.Names()...)
	}
	writeJSON(w, names)
}

func (s *Server) getMod(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if s.lib != nil {
		if m, ok := s.lib.Get(name); ok {
			writeJSON(w, m)
			return
		}
	}
	writeError(w, http.StatusNotFound, "unknown mod "+name)
}

//calc decodes the request and builds a calc, writing the error response on
//failure
func (s *Server) calc(w http.ResponseWriter, r *http.Request) (*combat.Calc, bool) {
	var req HitRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return nil, false
	}
	p := combat.Profile{
		Label: req.Label,
		Weapon: combat.WeaponProfile{
			Name:   req.Label,
			Damage: req.Damage,
		},
		Enemy: req.Enemy,
		Mods:  req.Mods,
		Extra: req.Extra,
	}
	if p.Weapon.Name == "" {
		p.Weapon.Name = "weapon"
	}
	c, err := combat.NewWithLogger(p, s.lib, s.Log)
	switch {
	case errors.Is(err, combat.ErrUnknownMod):
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return c, true
}

func (s *Server) hit(w http.ResponseWriter, r *http.Request) {
	c, ok := s.calc(w, r)
	if !ok {
		return
	}
	res := c.Run()
	s.Log.Debugw("hit resolved", "label", c.Label, "total", res.Total)
	writeJSON(w, res)
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	c, ok := s.calc(w, r)
	if !ok {
		return
	}
	title := c.Label
	if title == "" {
		title = "hit"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.BarChart(w, title, c.Run()); err != nil {
		s.Log.Warnw("chart render failed", "err", err)
	}
}

func (s *Server) statusChance(w http.ResponseWriter, r *http.Request) {
	c, ok := s.calc(w, r)
	if !ok {
		return
	}
	sc, err := c.Hit().StatusChance()
	switch {
	case errors.Is(err, combat.ErrNotImplemented):
		writeError(w, http.StatusNotImplemented, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, sc)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   http.StatusText(code),
		"message": msg,
		"status":  code,
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
