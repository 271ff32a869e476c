package attendance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_records_inserted_total",
		Help: "Attendance records committed to storage.",
	})
	batchesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_batches_rejected_total",
		Help: "Attendance batches aborted by validation or duplicates.",
	})
)
