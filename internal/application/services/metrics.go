package services

import "github.com/prometheus/client_golang/prometheus"

var (
	guestSyncItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guest_sync_items_total",
			Help: "Guest items merged into accounts, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	otpRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "otp_requests_total",
			Help: "One-time codes issued",
		},
	)

	otpVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_verifications_total",
			Help: "OTP verification attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(guestSyncItemsTotal)
	prometheus.MustRegister(otpRequestsTotal)
	prometheus.MustRegister(otpVerificationsTotal)
}
