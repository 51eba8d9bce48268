package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "waselni"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Количество HTTP запросов по методу, пути и статусу",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Длительность обработки HTTP запросов",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	MatchQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_queries_total",
		Help:      "Количество запросов подбора по направлению (request/offer)",
	}, []string{"direction"})

	ContractTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contract_transitions_total",
		Help:      "Количество переходов контрактов по целевому статусу",
	}, []string{"to_status"})

	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_total",
		Help:      "Количество платежей по результату",
	}, []string{"outcome"})
)
