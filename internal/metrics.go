package internal

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postfx_stage_duration_seconds",
		Help:    "Time spent applying each post-processing stage to one image.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
	}, []string{"stage"})

	imagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postfx_images_total",
		Help: "Images run through the post-processing pipeline, by result.",
	}, []string{"result"})
)

func observeStage(stage string, elapsed time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

func countImage(err error) {
	result := "done"
	if err != nil {
		result = "failed"
	}
	imagesProcessed.WithLabelValues(result).Inc()
}
