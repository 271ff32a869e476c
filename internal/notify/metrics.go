package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var smsAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sms_notifications_total",
	Help: "Absence SMS attempts by delivery outcome.",
}, []string{"status"})
