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
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	return string(body)
}

func TestHandlerExposesPrefixedMetrics(t *testing.T) {
	t.Parallel()

	SamplesDrawn.WithLabelValues("handler-test", "arrivals").Add(3)

	assert.Contains(t, scrape(t), `simvar_samples_drawn{distribution="arrivals",model="handler-test"} 3`)
}

func TestQueue(t *testing.T) {
	t.Parallel()

	q := NewQueue("queue-test", 2)
	q.Enqueued(0)
	q.Enqueued(1)
	q.Enqueued(2)
	q.Dequeued()

	body := scrape(t)
	assert.Contains(t, body, `simvar_queue_capacity{queue="queue-test"} 2`)
	assert.Contains(t, body, `simvar_queue_depth{queue="queue-test"} 2`)
	assert.Contains(t, body, `simvar_queue_full{queue="queue-test"} 1`)
}

func TestExecutionTimeWithError(t *testing.T) {
	t.Parallel()

	err := ExecutionTimeWithError("failing-task", func() error { return errors.New("boom") })
	require.Error(t, err)
	require.NoError(t, ExecutionTimeWithError("failing-task", func() error { return nil }))

	body := scrape(t)
	assert.Contains(t, body, `simvar_execution_errors{ty="failing-task"} 1`)
	assert.Contains(t, body, `simvar_execution_time_count{task="failing-task"} 2`)
}
