package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "group_order_orders_created_total",
		Help: "Group orders opened in waiting state.",
	})
	OrdersMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "group_order_orders_matched_total",
		Help: "Group orders successfully matched by a second participant.",
	})
	OrdersExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "group_order_orders_expired_total",
		Help: "Waiting orders cancelled by the expiration sweeper.",
	})
	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "group_order_orders_cancelled_total",
		Help: "Waiting orders explicitly cancelled by their creator.",
	})
	MatchConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "group_order_match_conflicts_total",
		Help: "Match attempts rejected because the order was no longer joinable.",
	})
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
