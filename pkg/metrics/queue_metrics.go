// Copyright 2025 ScyllaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	queueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "queue_depth",
			Help: "Items waiting in a bounded queue.",
		},
		[]string{"queue"},
	)

	queueCapacity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "queue_capacity",
		},
		[]string{"queue"},
	)

	queueFull = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_full",
			Help: "Enqueues that found the queue full and blocked the producer.",
		},
		[]string{"queue"},
	)
)

// Queue tracks the fill level of one buffered channel. A rising queue_full
// count means the consumer, not sampling, bounds throughput.
type Queue struct {
	depth    prometheus.Gauge
	full     prometheus.Counter
	capacity int
}

func NewQueue(name string, capacity int) Queue {
	queueCapacity.WithLabelValues(name).Set(float64(capacity))

	return Queue{
		depth:    queueDepth.WithLabelValues(name),
		full:     queueFull.WithLabelValues(name),
		capacity: capacity,
	}
}

// Enqueued is called before a send; queued is the length of the channel at
// that moment.
func (q Queue) Enqueued(queued int) {
	if queued >= q.capacity {
		q.full.Inc()
	}
	q.depth.Inc()
}

func (q Queue) Dequeued() {
	q.depth.Dec()
}
