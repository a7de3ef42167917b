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
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registerer = prometheus.NewRegistry()

var (
	ExecutionTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "execution_time",
			Help:    "Time taken to execute a task, in microseconds.",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1e6, 1e7, 1e8},
		},
		[]string{"task"},
	)

	SamplesDrawn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "samples_drawn",
			Help: "Number of variates drawn from a distribution.",
		},
		[]string{"model", "distribution"},
	)

	Replications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replications",
			Help: "Replications finished, by outcome.",
		},
		[]string{"model", "status"},
	)

	ReplicationsRunning = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "replications_running",
		},
		[]string{"model"},
	)

	StreamsAssigned = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "streams_assigned",
			Help: "Random streams owned by the distributions of a model.",
		},
		[]string{"model"},
	)

	FileSizeMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "file_size_bytes",
		},
		[]string{"file"},
	)

	ExecutionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "execution_errors",
		},
		[]string{"ty"},
	)
)

func init() {
	r := prometheus.WrapRegistererWithPrefix("simvar_", registerer)

	r.MustRegister(queueDepth, queueCapacity, queueFull, ExecutionTime)

	r.MustRegister(
		SamplesDrawn,
		Replications,
		ReplicationsRunning,
		StreamsAssigned,
		FileSizeMetrics,
		ExecutionErrors,
	)

	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			ReportErrors: true,
			PidFn: func() (int, error) {
				return os.Getpid(), nil
			},
		}),
		collectors.NewBuildInfoCollector(),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "go_goroutines_count",
			Help: "Number of goroutines currently active.",
		}, func() float64 {
			return float64(runtime.NumGoroutine())
		}),
	)
}

// Handler serves the simvar registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		registerer, promhttp.HandlerFor(registerer, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			Registry:          registerer,
			OfferedCompressions: []promhttp.Compression{
				promhttp.Zstd,
				promhttp.Gzip,
				promhttp.Identity,
			},
		}),
	)
}

// StartMetricsServer serves /metrics on bind until ctx is done.
func StartMetricsServer(ctx context.Context, bind string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	server := &http.Server{
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      1 * time.Minute,
		Handler:           mux,
		Addr:              bind,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(errors.Wrapf(err, "failed to start metrics server on %s", bind))
		}
	}()

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(context.Background()); err != nil {
			log.Println(err)
		}
	}()
}

type RunningTime struct {
	start    time.Time
	observer prometheus.Observer
}

func ExecutionTimeStart(task string) RunningTime {
	return RunningTime{
		start:    time.Now(),
		observer: ExecutionTime.WithLabelValues(task),
	}
}

func (r RunningTime) Record() {
	r.observer.Observe(float64(time.Since(r.start).Microseconds()))
}

func ExecutionTimeWithError(task string, callback func() error) error {
	start := time.Now()
	err := callback()
	ExecutionTime.
		WithLabelValues(task).
		Observe(float64(time.Since(start).Nanoseconds()) / 1e3)

	if err != nil {
		ExecutionErrors.WithLabelValues(task).Inc()
	}

	return err
}
