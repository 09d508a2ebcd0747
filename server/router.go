package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"fabsim/model"
	"fabsim/presenter"
	"fabsim/theory"
)

//go:embed static/index.html
var indexHTML []byte

type simulateResponse struct {
	*model.Result
	Summary string `json:"summary"`
}

type rangeInfo struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

type optionsResponse struct {
	Processes   []model.Process `json:"processes"`
	Variants    []model.Variant `json:"variants"`
	Temperature rangeInfo       `json:"temperature"`
	Duration    rangeInfo       `json:"duration"`
}

func (s *Server) routes(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})
	r.Get("/ws", s.serveWs)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openAPISpec)
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/processes", s.processes)
		r.Get("/simulate", s.simulateQuery)
		r.Post("/simulate", s.simulateBody)
		r.Get("/chart.{format}", s.chart)
		r.Get("/theory/{process}", s.theory)
	})
	return r
}

func (s *Server) processes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Processes: model.Processes,
		Variants:  model.Variants,
		Temperature: rangeInfo{
			Min: model.MinTemperature, Max: model.MaxTemperature,
			Step: model.TemperatureStep, Default: model.DefaultTemperature,
		},
		Duration: rangeInfo{
			Min: model.MinDuration, Max: model.MaxDuration,
			Step: 1, Default: model.DefaultDuration,
		},
	})
}

func (s *Server) simulateQuery(w http.ResponseWriter, r *http.Request) {
	req, err := queryRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.respondSimulation(w, req)
}

func (s *Server) simulateBody(w http.ResponseWriter, r *http.Request) {
	req, err := bodyRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.respondSimulation(w, req)
}

func (s *Server) respondSimulation(w http.ResponseWriter, req model.SimulationRequest) {
	res, err := s.metrics.simulate(s.calc, req, "http")
	if err != nil {
		writeSimulationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, simulateResponse{Result: res, Summary: presenter.Summary(res)})
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	format, err := presenter.ChartFormat(chi.URLParam(r, "format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req, err := queryRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := s.metrics.simulate(s.calc, req, "chart")
	if err != nil {
		writeSimulationError(w, err)
		return
	}
	if format == presenter.SVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	if err := presenter.Chart(w, res, format); err != nil {
		log.WithField("err", err).Error("render chart")
	}
}

func (s *Server) theory(w http.ResponseWriter, r *http.Request) {
	md, err := theory.Markdown(model.Process(chi.URLParam(r, "process")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(md))
}

func writeSimulationError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrUnknownProcess) || errors.Is(err, model.ErrUnknownVariant) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.WithField("err", err).Error("simulate")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithField("err", err).Warn("encode response")
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  ww.Status(),
			"remote":  r.RemoteAddr,
			"elapsed": time.Since(start),
		}).Debug("http")
	})
}
