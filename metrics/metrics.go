package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dosada05/pelada/models"
)

const namespace = "pelada"

// Recorder owns the service's Prometheus collectors. A nil *Recorder is a no-op.
type Recorder struct {
	registry *prometheus.Registry

	lineups        *prometheus.CounterVec
	lineupDuration prometheus.Histogram
	rosterSize     prometheus.Histogram
	skillDiff      prometheus.Histogram
	rejected       *prometheus.CounterVec
	exports        *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		lineups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lineups_generated_total",
			Help:      "Team draws completed, by formation size.",
		}, []string{"formation_size"}),
		lineupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lineup_duration_seconds",
			Help:      "Time spent drawing teams.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
		rosterSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lineup_roster_size",
			Help:      "Players per team draw.",
			Buckets:   prometheus.LinearBuckets(16, 2, 10),
		}),
		skillDiff: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lineup_team_skill_difference",
			Help:      "Absolute difference of summed skill between the two teams.",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lineups_rejected_total",
			Help:      "Team draw requests rejected before drawing.",
		}, []string{"reason"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lineup_exports_total",
			Help:      "Spreadsheet exports, by whether they were archived.",
		}, []string{"archived"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	r.registry.MustRegister(
		r.lineups, r.lineupDuration, r.rosterSize, r.skillDiff,
		r.rejected, r.exports, r.httpRequests, r.httpLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) ObserveLineup(lineup *models.Lineup, duration time.Duration) {
	if r == nil || lineup == nil {
		return
	}
	r.lineups.WithLabelValues(strconv.Itoa(lineup.FormationSize)).Inc()
	r.lineupDuration.Observe(duration.Seconds())
	r.rosterSize.Observe(float64(lineup.Size()))

	diff := skillSum(lineup.Team1) - skillSum(lineup.Team2)
	if diff < 0 {
		diff = -diff
	}
	r.skillDiff.Observe(float64(diff))
}

func (r *Recorder) IncRejected(reason string) {
	if r == nil {
		return
	}
	r.rejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) IncExport(archived bool) {
	if r == nil {
		return
	}
	r.exports.WithLabelValues(strconv.FormatBool(archived)).Inc()
}

func (r *Recorder) RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func skillSum(team []models.AssignedPlayer) int {
	total := 0
	for _, p := range team {
		total += p.Skill
	}
	return total
}
