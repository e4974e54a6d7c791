// SPDX-License-Identifier: EPL-2.0

package device

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	captureChunksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audwave_capture_chunks_total",
			Help: "Total number of chunks read from the capture device",
		},
	)

	captureChunksDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audwave_capture_chunks_dropped_total",
			Help: "Total number of captured chunks dropped because the consumer lagged",
		},
	)

	captureReadErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audwave_capture_read_errors_total",
			Help: "Total number of failed capture reads",
		},
	)

	playbackSamplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audwave_playback_samples_total",
			Help: "Total number of samples written to the playback device, padding included",
		},
	)

	playbackWriteErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audwave_playback_write_errors_total",
			Help: "Total number of failed playback writes",
		},
	)
)
