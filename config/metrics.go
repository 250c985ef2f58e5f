package config

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "labtrack_http_requests_total",
		Help: "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	WorkOrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "labtrack_work_orders_created_total",
		Help: "Work orders created.",
	})

	NotificationsPushed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "labtrack_notifications_pushed_total",
		Help: "Notifications pushed to live subscriptions.",
	})

	SubscriberConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "labtrack_subscriber_connections",
		Help: "Currently open notification streams.",
	})
)

func RegisterMetrics() {
	prometheus.MustRegister(HTTPRequests, WorkOrdersCreated, NotificationsPushed, SubscriberConnections)
}

func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
