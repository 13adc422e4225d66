package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	"github.com/jhoicas/gametech-stock/pkg/config"
	"github.com/jhoicas/gametech-stock/pkg/logger"
)

const jobTimeout = time.Minute

// StockSession lo que las tareas periódicas usan de la sesión de stock.
type StockSession interface {
	ReloadWarehouses(ctx context.Context) (int, error)
	Replenishment(now time.Time) []dto.ReplenishmentSuggestionDTO
}

// Scheduler tareas periódicas: recarga de depósitos y barrido de stock crítico.
type Scheduler struct {
	cron    *cron.Cron
	session StockSession
	cfg     config.SchedulerConfig
	log     *logger.Logger
}

// New crea el scheduler. Las expresiones cron llevan segundos (6 campos).
func New(cfg config.SchedulerConfig, session StockSession, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		session: session,
		cfg:     cfg,
		log:     log,
	}
}

// Start registra las tareas configuradas y arranca el cron. Una expresión vacía deshabilita la tarea.
func (s *Scheduler) Start() error {
	jobs := []struct {
		name string
		spec string
		fn   func()
	}{
		{"reload_warehouses", s.cfg.ReloadWarehousesCron, s.ReloadWarehouses},
		{"critical_sweep", s.cfg.CriticalSweepCron, func() { s.SweepCritical() }},
	}
	for _, job := range jobs {
		if job.spec == "" {
			continue
		}
		if _, err := s.cron.AddFunc(job.spec, job.fn); err != nil {
			return fmt.Errorf("programar %s (%q): %w", job.name, job.spec, err)
		}
		s.log.Info().Str("job", job.name).Str("spec", job.spec).Msg("tarea programada")
	}
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que terminen las tareas en curso.
func (s *Scheduler) Stop() {
	s.log.Info().Msg("deteniendo scheduler")
	<-s.cron.Stop().Done()
}

// Jobs cantidad de tareas programadas.
func (s *Scheduler) Jobs() int { return len(s.cron.Entries()) }

// ReloadWarehouses recarga el registro de depósitos.
func (s *Scheduler) ReloadWarehouses() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.session.ReloadWarehouses(ctx); err != nil {
		s.log.Error().Err(err).Msg("recarga programada de depósitos fallida")
	}
}

// SweepCritical registra un warning por cada producto bajo el mínimo y devuelve cuántos hay.
func (s *Scheduler) SweepCritical() int {
	list := s.session.Replenishment(time.Now())
	for _, item := range list {
		s.log.Warn().
			Str("code", item.ProductCode).
			Str("name", item.ProductName).
			Int("current_stock", item.CurrentStock).
			Int("minimum_stock", item.MinimumStock).
			Int("suggested_order_qty", item.SuggestedOrderQty).
			Int("priority", item.Priority).
			Msg("stock crítico")
	}
	s.log.Info().Int("critical", len(list)).Msg("barrido de stock crítico")
	return len(list)
}
