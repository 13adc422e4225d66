package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	"github.com/jhoicas/gametech-stock/internal/infrastructure/scheduler"
	"github.com/jhoicas/gametech-stock/pkg/config"
)

type fakeSession struct {
	reloads   int
	reloadErr error
	critical  []dto.ReplenishmentSuggestionDTO
}

func (f *fakeSession) ReloadWarehouses(context.Context) (int, error) {
	f.reloads++
	return 2, f.reloadErr
}

func (f *fakeSession) Replenishment(time.Time) []dto.ReplenishmentSuggestionDTO { return f.critical }

func TestScheduler_ProgramaTareasConfiguradas(t *testing.T) {
	s := scheduler.New(config.SchedulerConfig{ReloadWarehousesCron: "0 */15 * * * *", CriticalSweepCron: "0 0 8 * * *"}, &fakeSession{}, nil)
	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Equal(t, 2, s.Jobs())
}

func TestScheduler_ExpresionVaciaDeshabilita(t *testing.T) {
	s := scheduler.New(config.SchedulerConfig{CriticalSweepCron: "0 0 8 * * *"}, &fakeSession{}, nil)
	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Equal(t, 1, s.Jobs())
}

func TestScheduler_ExpresionInvalida(t *testing.T) {
	s := scheduler.New(config.SchedulerConfig{ReloadWarehousesCron: "cada tanto"}, &fakeSession{}, nil)
	assert.Error(t, s.Start())
}

func TestScheduler_Tareas(t *testing.T) {
	sess := &fakeSession{
		reloadErr: errors.New("db caída"),
		critical:  []dto.ReplenishmentSuggestionDTO{{ProductCode: "P001", Priority: 1}, {ProductCode: "P004", Priority: 2}},
	}
	s := scheduler.New(config.SchedulerConfig{}, sess, nil)

	s.ReloadWarehouses()
	assert.Equal(t, 1, sess.reloads)
	assert.Equal(t, 2, s.SweepCritical())
}
