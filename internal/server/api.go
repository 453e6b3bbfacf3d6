package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// NewAPI builds the song book router: chord tools, the songs API, /metrics and /healthz.
//
// songs may be nil, in which case only the stateless endpoints are served.
func NewAPI(songs SongReader, logger *log.Logger) *BasicRouter {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(reg)

	r := NewBasicRouter()
	r.Use(RecoverMiddleware(logger), LoggingMiddleware(logger), metrics.Middleware())

	r.Handler(NewChordProHandler())
	if songs != nil {
		r.Handler(NewSongsHandler(songs))
	}

	r.HandleFunc(http.MethodGet, "/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.mux.Handle("GET /metrics", metrics.Handler())

	return r
}
