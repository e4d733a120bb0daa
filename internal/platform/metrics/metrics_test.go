package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/events"
	"github.com/phrazzld/task-tracker/internal/platform/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noTasks() int { return 0 }

func TestMetrics_HandleEvent(t *testing.T) {
	stored := 0
	m := New(prometheus.NewRegistry(), func() int { return stored })
	ctx := context.Background()

	stored = 2
	require.NoError(t, m.HandleEvent(ctx, events.NewTaskAppendedEvent(domain.NewTask("a", "", ""), 0)))
	require.NoError(t, m.HandleEvent(ctx, events.NewTaskAppendedEvent(domain.NewTask("b", "", ""), 1)))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksAppended))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksStored))
}

func TestMetrics_TasksStoredIgnoresEventOrder(t *testing.T) {
	stored := 6
	m := New(prometheus.NewRegistry(), func() int { return stored })
	ctx := context.Background()

	// Appends release the store lock before emitting, so a later position
	// can be delivered first.
	require.NoError(t, m.HandleEvent(ctx, events.NewTaskAppendedEvent(domain.NewTask("f", "", ""), 5)))
	require.NoError(t, m.HandleEvent(ctx, events.NewTaskAppendedEvent(domain.NewTask("e", "", ""), 4)))

	assert.Equal(t, 6.0, testutil.ToFloat64(m.TasksStored))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksAppended))
}

func TestMetrics_TasksStoredTracksStore(t *testing.T) {
	emitter := events.NewInMemoryEventEmitter(slog.Default())
	taskStore := memory.NewMemoryTaskStore(emitter, nil)
	m := New(prometheus.NewRegistry(), taskStore.Len)
	emitter.RegisterHandler(m)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			taskStore.Append(context.Background(), domain.NewTask("t", "", ""))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20.0, testutil.ToFloat64(m.TasksStored))
	assert.Equal(t, 20.0, testutil.ToFloat64(m.TasksAppended))
}

func TestMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, noTasks)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/tasks", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tasks", http.StatusFound)
	})

	for _, method := range []string{http.MethodGet, http.MethodGet, http.MethodPost} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/tasks", nil))
	}

	// One series per method/status pair
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestDuration))

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]uint64{}
	for _, family := range families {
		if family.GetName() != "task_tracker_http_request_duration_seconds" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			assert.Equal(t, "/tasks", labels["route"])
			counts[labels["method"]+" "+labels["status"]] = metric.GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(2), counts["GET 200"])
	assert.Equal(t, uint64(1), counts["POST 302"])
}

func TestMetrics_RecordHTTPRequestDuration(t *testing.T) {
	m := New(prometheus.NewRegistry(), noTasks)

	m.RecordHTTPRequestDuration(http.MethodGet, "/tasks", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := New(NewRegistry(), noTasks)
	m.TasksAppended.Add(3)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "task_tracker_tasks_appended_total 3")
	assert.Contains(t, body, "go_goroutines")
}
