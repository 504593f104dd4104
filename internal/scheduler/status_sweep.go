package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/internal/metrics"
	"github.com/vfg2006/budget-planner-api/internal/usecases/pacing"
)

// StatusSweepConfig representa a configuração do agendador de varredura de status
type StatusSweepConfig struct {
	CronSchedule string
	SweepEnabled bool
}

// StatusSweepService reavalia periodicamente o status de todas as campanhas,
// aplicando a máquina de status campanha a campanha.
type StatusSweepService struct {
	scheduler            *gocron.Scheduler
	config               StatusSweepConfig
	campaignRepo         repository.CampaignRepository
	pacer                pacing.Pacer
	sweepRunning         bool
	sweepMutex           sync.Mutex
	lastSweepStartedAt   time.Time
	lastSweepCompletedAt time.Time
	lastSweepResult      domain.StatusSweepResult
}

// NewStatusSweepService cria uma nova instância do serviço de varredura de status
func NewStatusSweepService(
	campaignRepo repository.CampaignRepository,
	pacer pacing.Pacer,
	appConfig *config.Config,
	location *time.Location,
) *StatusSweepService {
	sweepConfig := StatusSweepConfig{
		CronSchedule: appConfig.StatusSweep.CronSchedule,
		SweepEnabled: appConfig.StatusSweep.Enabled,
	}

	if location == nil {
		location = time.UTC
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": sweepConfig.CronSchedule,
		"sweep_enabled": sweepConfig.SweepEnabled,
	}).Info("Configuração do agendador de varredura de status carregada")

	return &StatusSweepService{
		scheduler:    gocron.NewScheduler(location),
		config:       sweepConfig,
		campaignRepo: campaignRepo,
		pacer:        pacer,
		sweepRunning: false,
	}
}

// Start inicia o agendador
func (s *StatusSweepService) Start(ctx context.Context) error {
	if !s.config.SweepEnabled {
		logrus.Info("Varredura de status desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de varredura de status")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunStatusSweep()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de status: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de varredura de status")
		s.scheduler.Stop()
	}()

	return nil
}

// RunStatusSweep reavalia todas as campanhas e retorna a contagem de
// transições aplicadas. Execuções concorrentes são ignoradas.
func (s *StatusSweepService) RunStatusSweep() (*domain.StatusSweepResult, error) {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("Varredura de status já em andamento, ignorando")
		return nil, nil
	}
	s.sweepRunning = true
	startTime := time.Now()
	s.lastSweepStartedAt = startTime
	s.sweepMutex.Unlock()

	defer func() {
		s.sweepMutex.Lock()
		s.sweepRunning = false
		s.sweepMutex.Unlock()
	}()

	logrus.Info("Iniciando varredura de status de campanhas")

	campaigns, err := s.campaignRepo.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas para varredura de status")
		metrics.RecordJobRun("status_sweep", "failure", time.Since(startTime).Seconds())
		return nil, err
	}

	result := s.sweepCampaigns(campaigns)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":          duration.String(),
		"campaigns":         len(campaigns),
		"transitions":       result.Total(),
		"activated":         result.Activated,
		"budget_paused":     result.BudgetPaused,
		"dayparting_paused": result.DaypartingPaused,
		"deactivated":       result.Deactivated,
	}).Info("Varredura de status concluída")

	s.sweepMutex.Lock()
	s.lastSweepCompletedAt = time.Now()
	s.lastSweepResult = *result
	s.sweepMutex.Unlock()
	metrics.RecordJobRun("status_sweep", "success", duration.Seconds())

	return result, nil
}

// sweepCampaigns aplica a máquina de status a cada campanha e tabula as
// transições. Erros individuais não interrompem a varredura.
func (s *StatusSweepService) sweepCampaigns(campaigns []*domain.Campaign) *domain.StatusSweepResult {
	result := &domain.StatusSweepResult{}

	for _, campaign := range campaigns {
		previous := campaign.Status

		updated, err := s.pacer.EvaluateAndApply(campaign)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
				"error":       err.Error(),
			}).Error("Erro ao reavaliar status da campanha. Pulando.")
			continue
		}

		if updated.Status == previous {
			continue
		}

		metrics.StatusTransitions.WithLabelValues(string(updated.Status)).Inc()

		switch updated.Status {
		case domain.CampaignStatusActive:
			result.Activated++
		case domain.CampaignStatusBudgetExceeded:
			result.BudgetPaused++
		case domain.CampaignStatusDaypartingPaused:
			result.DaypartingPaused++
		case domain.CampaignStatusInactive:
			result.Deactivated++
		}

		logrus.WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"from":        previous,
			"to":          updated.Status,
		}).Info("Status da campanha atualizado pela varredura")
	}

	return result
}

// TriggerManualSync inicia manualmente uma varredura de status
func (s *StatusSweepService) TriggerManualSync() {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("Varredura de status já em andamento, ignorando solicitação manual")
		return
	}
	s.sweepMutex.Unlock()

	logrus.Info("Iniciando varredura manual de status")
	go s.RunStatusSweep()
}

// GetStatus retorna o status atual do agendador
func (s *StatusSweepService) GetStatus() map[string]any {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	return map[string]any{
		"sweep_enabled":           s.config.SweepEnabled,
		"sweep_cron":              s.config.CronSchedule,
		"last_sweep_started_at":   s.lastSweepStartedAt,
		"last_sweep_completed_at": s.lastSweepCompletedAt,
		"last_sweep_result":       s.lastSweepResult,
	}
}
