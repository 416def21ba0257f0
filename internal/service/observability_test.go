package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestTaskService_EmitsUseCaseEvents(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := testutil.NewTestStore(database)
	uow := testutil.NewTestUoW(database)
	rec := &recordingObserver{}
	tasks := NewTaskService(store.Tasks, uow, EngineConfig{}, rec)
	seeded := testutil.SeedTree(t, store, testutil.NewTestConstruction("Casa"), twoStageSpec())
	ctx := context.Background()

	_, err := tasks.Update(ctx, seeded.Tasks[0].ID, domain.TaskPatch{Name: strPtr("Nome novo")})
	require.NoError(t, err)
	_, err = tasks.Update(ctx, domain.NewID(), domain.TaskPatch{Name: strPtr("x")})
	require.Error(t, err)

	require.Len(t, rec.events, 2)
	assert.Equal(t, "update-task", rec.events[0].Name)
	assert.True(t, rec.events[0].Success)
	assert.Equal(t, false, rec.events[0].Fields["recomputed"])
	assert.False(t, rec.events[1].Success)
	assert.ErrorIs(t, rec.events[1].Err, domain.ErrNotFound)
}

func TestLogUseCaseObserver_WritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewJSONHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "recalculate-stage",
		Success: true,
		Fields:  map[string]any{"stage": "abc"},
	})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "service_use_case", rec["msg"])
	assert.Equal(t, "recalculate-stage", rec["use_case"])
	assert.Equal(t, "abc", rec["stage"])
	assert.Equal(t, "INFO", rec["level"])
}

func TestNewLogUseCaseObserver_NilLoggerIsNoop(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.Equal(t, NoopUseCaseObserver{}, NewTintUseCaseObserver(nil, true))
}
