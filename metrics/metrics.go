// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// HTTP
	MetricRequests        = "http_requests_total"
	MetricRequestDuration = "http_request_duration_seconds"
	// Admission
	MetricVotesAdmitted = "votes_admitted_total"
	MetricVotesRejected = "votes_rejected_total"
	MetricVotesRecorded = "vote_records_total"
)

// Rejection reasons
const (
	ReasonNoChoices        = "no-choices"
	ReasonInvalidSelection = "invalid-selection"
	ReasonAlreadyVoted     = "already-voted"
	ReasonPollNotFound     = "poll-not-found"
	ReasonStorage          = "storage"
)

// Service holds the collectors of one server instance in its own registry,
// so several instances (tests) never collide on registration.
type Service struct {
	MetricsMap map[string]prometheus.Collector
	registry   *prometheus.Registry
}

func NewService() *Service {
	ms := make(map[string]prometheus.Collector)
	reg := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: MetricRequests,
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	ms[MetricRequests] = requests

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    MetricRequestDuration,
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	ms[MetricRequestDuration] = duration

	admitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricVotesAdmitted,
		Help: "Ballots admitted by the vote admission protocol",
	})
	ms[MetricVotesAdmitted] = admitted

	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: MetricVotesRejected,
		Help: "Ballots rejected by the vote admission protocol, by reason",
	}, []string{"reason"})
	ms[MetricVotesRejected] = rejected

	recorded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricVotesRecorded,
		Help: "Vote rows written for admitted ballots",
	})
	ms[MetricVotesRecorded] = recorded

	for _, c := range ms {
		reg.MustRegister(c)
	}
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Service{
		MetricsMap: ms,
		registry:   reg,
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Service) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Service) Registry() *prometheus.Registry {
	return m.registry
}

// HTTP
func (m *Service) ObserveRequest(method, route string, status int, d time.Duration) {
	m.MetricsMap[MetricRequests].(*prometheus.CounterVec).
		WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.MetricsMap[MetricRequestDuration].(*prometheus.HistogramVec).
		WithLabelValues(route).Observe(d.Seconds())
}

// Admission
func (m *Service) IncVoteAdmitted(recorded int) {
	m.MetricsMap[MetricVotesAdmitted].(prometheus.Counter).Inc()
	m.MetricsMap[MetricVotesRecorded].(prometheus.Counter).Add(float64(recorded))
}

func (m *Service) IncVoteRejected(reason string) {
	m.MetricsMap[MetricVotesRejected].(*prometheus.CounterVec).WithLabelValues(reason).Inc()
}
