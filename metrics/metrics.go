package metrics

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the set of domain events the services report
type Recorder interface {
	RecordTodoCreated()
	RecordTodoDeleted()
	RecordQuotaRejected()
	RecordSubscriptionActivated()
	RecordSubscriptionsExpired(count int64)
}

type Collector struct {
	httpRequests         *prometheus.CounterVec
	httpLatency          *prometheus.HistogramVec
	todosCreated         prometheus.Counter
	todosDeleted         prometheus.Counter
	quotaRejections      prometheus.Counter
	subscriptionsActive  prometheus.Counter
	subscriptionsExpired prometheus.Counter
}

// NewCollector creates the collectors and registers them with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "todo_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		}, []string{"route", "method", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "todo_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		todosCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todo_todos_created_total",
			Help: "Todos created",
		}),
		todosDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todo_todos_deleted_total",
			Help: "Todos deleted",
		}),
		quotaRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todo_quota_rejections_total",
			Help: "Todo creations rejected by the free tier quota",
		}),
		subscriptionsActive: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todo_subscriptions_activated_total",
			Help: "Subscription activations",
		}),
		subscriptionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todo_subscriptions_expired_total",
			Help: "Elapsed subscriptions cleared by the sweeper",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.todosCreated,
		c.todosDeleted,
		c.quotaRejections,
		c.subscriptionsActive,
		c.subscriptionsExpired,
	)

	return c
}

func (c *Collector) RecordTodoCreated()           { c.todosCreated.Inc() }
func (c *Collector) RecordTodoDeleted()           { c.todosDeleted.Inc() }
func (c *Collector) RecordQuotaRejected()         { c.quotaRejections.Inc() }
func (c *Collector) RecordSubscriptionActivated() { c.subscriptionsActive.Inc() }

func (c *Collector) RecordSubscriptionsExpired(count int64) {
	if count > 0 {
		c.subscriptionsExpired.Add(float64(count))
	}
}

// Middleware counts and times every request routed by mux, labelled by the
// route template so that path parameters do not explode cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := routeTemplate(r)
		elapsed := time.Since(start)
		c.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		c.httpLatency.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())
		log.Printf("🌐 %s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, elapsed.Round(time.Millisecond))
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

// Handler returns the Prometheus scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NoopRecorder discards every event
type NoopRecorder struct{}

func (NoopRecorder) RecordTodoCreated()               {}
func (NoopRecorder) RecordTodoDeleted()               {}
func (NoopRecorder) RecordQuotaRejected()             {}
func (NoopRecorder) RecordSubscriptionActivated()     {}
func (NoopRecorder) RecordSubscriptionsExpired(int64) {}
