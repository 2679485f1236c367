package http

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/aretw0/minitap"
	"github.com/aretw0/minitap/pkg/hub"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Inspector is the read side of the hub exposed over HTTP.
type Inspector interface {
	Channels() map[string]int
}

// ChannelInfo is one entry of GET /channels.
type ChannelInfo struct {
	Channel     string `json:"channel"`
	Namespace   string `json:"namespace"`
	Subscribers int    `json:"subscribers"`
}

// Server serves inspection endpoints for a hub.
type Server struct {
	Hub      Inspector
	Gatherer prometheus.Gatherer
}

// NewHandler creates the HTTP handler. A nil gatherer disables /metrics.
func NewHandler(h Inspector, gatherer prometheus.Gatherer) http.Handler {
	s := &Server{Hub: h, Gatherer: gatherer}
	r := chi.NewRouter()

	r.Get("/health", s.health)
	r.Get("/info", s.info)
	r.Get("/channels", s.channels)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "minitap-http",
		"version": minitap.Version,
	})
}

// channels lists hub channels sorted by name, optionally filtered by
// ?namespace=app|page.
func (s *Server) channels(w http.ResponseWriter, r *http.Request) {
	if s.Hub == nil {
		writeJSON(w, http.StatusOK, []ChannelInfo{})
		return
	}
	ns := r.URL.Query().Get("namespace")

	out := make([]ChannelInfo, 0)
	for name, n := range s.Hub.Channels() {
		info := ChannelInfo{Channel: name, Namespace: hub.Namespace(name), Subscribers: n}
		if ns != "" && info.Namespace != ns {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Channel < out[j].Channel })
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
