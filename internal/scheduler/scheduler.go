package scheduler

import (
	"context"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs the daily re-evaluation of life stages. Animals age out of
// their current stage with the passage of time alone, so a periodic sweep
// keeps etapa and propósito current without waiting for a manual edit.
type Scheduler struct {
	cron *cron.Cron
	cuys service.CuyService
	log  zerolog.Logger
}

func New(cuys service.CuyService, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		cuys: cuys,
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the re-evaluation job with the given cron expression and
// begins scheduling. Returns an error only if the expression does not parse.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.reevaluar)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("cron", spec).Msg("reevaluación de etapas programada")
	return nil
}

// Stop waits for a running job to finish before returning.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) reevaluar() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	inicio := time.Now()
	actualizados, err := s.cuys.Reevaluar(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reevaluación de etapas falló")
		return
	}
	s.log.Info().
		Int("actualizados", actualizados).
		Dur("duración", time.Since(inicio)).
		Msg("reevaluación de etapas completada")
}
