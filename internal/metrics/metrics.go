package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "surveyhub",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "surveyhub",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	SurveysCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "surveyhub",
		Name:      "surveys_created_total",
		Help:      "Surveys created, flat or as a nested tree.",
	})

	ResponsesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "surveyhub",
		Name:      "responses_created_total",
		Help:      "Survey responses created.",
	})

	AnswersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "surveyhub",
		Name:      "answers_submitted_total",
		Help:      "Answers persisted by successful submissions.",
	})

	SubmissionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "surveyhub",
		Name:      "answer_submissions_rejected_total",
		Help:      "Answer submissions rejected before persisting, by error kind.",
	}, []string{"kind"})
)
