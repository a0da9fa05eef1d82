// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK                 = "ok"
	outcomeInvalidRequest     = "invalid_request"
	outcomeTooLarge           = "too_large"
	outcomeDecodeError        = "decode_error"
	outcomeNotFound           = "not_found"
	outcomeSerializationError = "serialization_error"

	// Label used for requests naming a kind we do not know
	kindUnknown = "unknown"
)

type decodeMetrics struct {
	requestsTotal  *prometheus.CounterVec
	decodeDuration *prometheus.HistogramVec
	inputBytes     *prometheus.HistogramVec
}

func (m *decodeMetrics) init(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	m.requestsTotal = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namgov_decode_requests_total",
			Help: "total decode requests by record kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	m.decodeDuration = promautoFactory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "namgov_decode_duration_seconds",
			Help:    "time spent decoding and rendering a record",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		},
		[]string{"kind"},
	)
	m.inputBytes = promautoFactory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "namgov_decode_input_bytes",
			Help:    "size of decoded record input after transport decoding",
			Buckets: prometheus.ExponentialBuckets(16, 4, 10),
		},
		[]string{"kind"},
	)
}
