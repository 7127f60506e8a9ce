package metrics

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

var (
	once          sync.Once
	metricsRouter *chi.Mux

	rpcClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpc_client_latency_seconds",
			Help:    "Histogram of stake rpc client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	stakeUpdatesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stake_registry_updates_total",
			Help: "Number of stake reports applied or rejected by the registry",
		},
		[]string{"status"},
	)

	totalStakeGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stake_registry_total_stake",
			Help: "Total activated stake of the current snapshot",
		},
	)

	nodesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stake_registry_nodes",
			Help: "Number of distinct node identities in the current snapshot",
		},
	)

	ownStakeGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stake_registry_own_stake",
			Help: "Activated stake of the local node identity",
		},
	)

	ownStakedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stake_registry_own_staked",
			Help: "1 if the local node identity is present in the snapshot, 0 otherwise",
		},
	)
)

// Init registers the collectors and starts the metrics server. Calls after
// the first one are no-ops.
func Init(metricsHost string, metricsPort int) {
	once.Do(func() {
		registerMetrics()
		initMetricsRouter(metricsHost, metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsHost string, metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := net.JoinHostPort(metricsHost, strconv.Itoa(metricsPort))
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics registers the Prometheus collectors with the default registry.
func registerMetrics() {
	prometheus.MustRegister(
		rpcClientLatency,
		pollerDurationHistogram,
		stakeUpdatesCounter,
		totalStakeGauge,
		nodesGauge,
		ownStakeGauge,
		ownStakedGauge,
	)
}

func RecordRPCClientLatency(d time.Duration, method string, failure bool) {
	rpcClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordStakeUpdate(failure bool) {
	stakeUpdatesCounter.WithLabelValues(outcome(failure).String()).Inc()
}

// RecordStakeSnapshot publishes the gauges describing the latest accepted
// snapshot.
func RecordStakeSnapshot(totalStake uint64, nodes int, ownStake uint64, ownStaked bool) {
	totalStakeGauge.Set(float64(totalStake))
	nodesGauge.Set(float64(nodes))
	ownStakeGauge.Set(float64(ownStake))
	if ownStaked {
		ownStakedGauge.Set(1)
	} else {
		ownStakedGauge.Set(0)
	}
}
