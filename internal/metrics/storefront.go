package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Storefront はチェックアウトとHTTPの計測値。nilでも呼べる。
type Storefront struct {
	checkouts       *prometheus.CounterVec
	checkoutRevenue prometheus.Counter
	cartAdds        prometheus.Counter
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkouts_total",
		Help: "Checkout attempts by result.",
	}, []string{"result"})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_revenue_total",
		Help: "Sum of total_amount for placed orders.",
	})
	cartAdds := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_adds_total",
		Help: "Successful add-to-cart requests.",
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(checkouts, revenue, cartAdds, requests, duration)

	return &Storefront{
		checkouts:       checkouts,
		checkoutRevenue: revenue,
		cartAdds:        cartAdds,
		httpRequests:    requests,
		httpDuration:    duration,
	}
}

// 注文確定
func (s *Storefront) CheckoutPlaced(total decimal.Decimal) {
	if s == nil || s.checkouts == nil {
		return
	}
	s.checkouts.WithLabelValues("placed").Inc()
	f, _ := total.Float64()
	s.checkoutRevenue.Add(f)
}

// 失敗理由: empty_cart / invalid / out_of_stock / error
func (s *Storefront) CheckoutFailed(reason string) {
	if s == nil || s.checkouts == nil {
		return
	}
	s.checkouts.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (s *Storefront) CartAdded() {
	if s == nil || s.cartAdds == nil {
		return
	}
	s.cartAdds.Inc()
}

func (s *Storefront) ObserveRequest(method string, route string, status int, elapsed time.Duration) {
	if s == nil || s.httpRequests == nil {
		return
	}
	route = normalizeLabel(route)
	s.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	s.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
