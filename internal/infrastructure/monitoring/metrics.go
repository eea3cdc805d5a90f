package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "diet"

// Metrics Prometheus 指標
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	recommendationsTotal *prometheus.CounterVec
	rulesFiredTotal      *prometheus.CounterVec
	cacheOperations      *prometheus.CounterVec
	catalogItems         prometheus.Gauge
	mealPlansTotal       *prometheus.CounterVec
}

// NewMetrics 在獨立的 registry 上建立指標
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		recommendationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommendations_total",
				Help:      "Recommendations served by goal and cache result",
			},
			[]string{"goal", "cache"},
		),
		rulesFiredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rules_fired_total",
				Help:      "Recommendation rules that took effect",
			},
			[]string{"rule"},
		),
		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_operations_total",
				Help:      "Result cache operations",
			},
			[]string{"operation", "result"},
		),
		catalogItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_items",
				Help:      "Number of foods in the loaded catalog",
			},
		),
		mealPlansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "meal_plans_total",
				Help:      "Meal plans built",
			},
			[]string{"result"},
		),
	}
}

// Registry 指標 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler /metrics 處理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware 記錄 HTTP 請求數與耗時
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordRecommendation 記錄一次推薦
func (m *Metrics) RecordRecommendation(goal string, cacheHit bool) {
	if m == nil {
		return
	}
	if goal == "" {
		goal = "none"
	}
	result := "miss"
	if cacheHit {
		result = "hit"
	}
	m.recommendationsTotal.WithLabelValues(goal, result).Inc()
}

// RecordRules 記錄生效的規則
func (m *Metrics) RecordRules(rules []string) {
	if m == nil {
		return
	}
	for _, r := range rules {
		m.rulesFiredTotal.WithLabelValues(r).Inc()
	}
}

// RecordCache 記錄快取操作
func (m *Metrics) RecordCache(operation, result string) {
	if m == nil {
		return
	}
	m.cacheOperations.WithLabelValues(operation, result).Inc()
}

// SetCatalogItems 設定目錄大小
func (m *Metrics) SetCatalogItems(n int) {
	if m == nil {
		return
	}
	m.catalogItems.Set(float64(n))
}

// RecordMealPlan 記錄餐單建立結果
func (m *Metrics) RecordMealPlan(result string) {
	if m == nil {
		return
	}
	m.mealPlansTotal.WithLabelValues(result).Inc()
}
