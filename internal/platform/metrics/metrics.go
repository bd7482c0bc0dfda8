package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager owns the service registry and its domain metrics.
type MetricsManager struct {
	Registry *prometheus.Registry

	ListingsExpired     prometheus.Counter
	ListingsRemoved     prometheus.Counter
	LifecycleSweeps     *prometheus.CounterVec
	Renewals            *prometheus.CounterVec
	Payments            *prometheus.CounterVec
	NotificationsIssued prometheus.Counter
	FeedRequests        *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func NewMetricsManager(namespace string) *MetricsManager {
	m := &MetricsManager{
		Registry: prometheus.NewRegistry(),
		ListingsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_expired_total",
			Help:      "Listings moved from Live to Expired by the lifecycle clock.",
		}),
		ListingsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_removed_total",
			Help:      "Expired listings removed after the retention window.",
		}),
		LifecycleSweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_sweeps_total",
			Help:      "Lifecycle passes by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		Renewals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renewals_total",
			Help:      "Renew, relist and sold actions by kind.",
		}, []string{"kind"}),
		Payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Payments by purpose and outcome.",
		}, []string{"purpose", "outcome"}),
		NotificationsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_issued_total",
			Help:      "Expiry reminders created.",
		}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "Feed pages built by view mode.",
		}, []string{"view"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.Registry.MustRegister(
		m.ListingsExpired,
		m.ListingsRemoved,
		m.LifecycleSweeps,
		m.Renewals,
		m.Payments,
		m.NotificationsIssued,
		m.FeedRequests,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// StartMetricsServer serves /metrics until ctx is cancelled. An empty port
// disables it.
func StartMetricsServer(ctx context.Context, port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	log := appLogger.Named("metrics")
	if port == "" {
		log.Info("metrics server disabled, PROMETHEUS_METRICS_PORT is not set")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("metrics server starting", zap.String("port", port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
