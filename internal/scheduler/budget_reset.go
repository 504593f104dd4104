package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/internal/metrics"
	"github.com/vfg2006/budget-planner-api/internal/usecases/pacing"
)

// BudgetResetConfig representa a configuração do agendador de resets de orçamento
type BudgetResetConfig struct {
	DailyCronSchedule   string
	MonthlyCronSchedule string
	ResetEnabled        bool
}

// BudgetResetService zera os caches de gasto na virada do dia e do mês e
// reavalia as campanhas para que pausas por orçamento sejam liberadas.
type BudgetResetService struct {
	scheduler            *gocron.Scheduler
	config               BudgetResetConfig
	brandRepo            repository.BrandRepository
	campaignRepo         repository.CampaignRepository
	pacer                pacing.Pacer
	resetRunning         bool
	resetMutex           sync.Mutex
	lastResetStartedAt   time.Time
	lastResetCompletedAt time.Time
	lastResetReport      domain.ResetReport
}

// NewBudgetResetService cria uma nova instância do serviço de resets de orçamento
func NewBudgetResetService(
	brandRepo repository.BrandRepository,
	campaignRepo repository.CampaignRepository,
	pacer pacing.Pacer,
	appConfig *config.Config,
	location *time.Location,
) *BudgetResetService {
	resetConfig := BudgetResetConfig{
		DailyCronSchedule:   appConfig.BudgetReset.DailyCronSchedule,
		MonthlyCronSchedule: appConfig.BudgetReset.MonthlyCronSchedule,
		ResetEnabled:        appConfig.BudgetReset.Enabled,
	}

	if location == nil {
		location = time.UTC
	}

	logrus.WithFields(logrus.Fields{
		"daily_cron":    resetConfig.DailyCronSchedule,
		"monthly_cron":  resetConfig.MonthlyCronSchedule,
		"reset_enabled": resetConfig.ResetEnabled,
	}).Info("Configuração do agendador de resets de orçamento carregada")

	return &BudgetResetService{
		scheduler:    gocron.NewScheduler(location),
		config:       resetConfig,
		brandRepo:    brandRepo,
		campaignRepo: campaignRepo,
		pacer:        pacer,
		resetRunning: false,
	}
}

// Start inicia o agendador com os dois resets. A ordem dos agendamentos
// importa no dia 1: o reset mensal também zera os caches diários.
func (s *BudgetResetService) Start(ctx context.Context) error {
	if !s.config.ResetEnabled {
		logrus.Info("Resets de orçamento desabilitados por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"daily_cron":   s.config.DailyCronSchedule,
		"monthly_cron": s.config.MonthlyCronSchedule,
	}).Info("Iniciando agendador de resets de orçamento")

	_, err := s.scheduler.Cron(s.config.DailyCronSchedule).Do(func() {
		s.RunDailyReset(false)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reset diário: %w", err)
	}

	_, err = s.scheduler.Cron(s.config.MonthlyCronSchedule).Do(func() {
		s.RunMonthlyReset(false)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reset mensal: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de resets de orçamento")
		s.scheduler.Stop()
	}()

	return nil
}

// RunDailyReset zera os caches de gasto diário de marcas e campanhas. Em
// dry-run nada é persistido: o relatório informa o que SERIA feito.
func (s *BudgetResetService) RunDailyReset(dryRun bool) (*domain.ResetReport, error) {
	return s.runReset(domain.ResetPeriodDaily, dryRun)
}

// RunMonthlyReset zera os caches de gasto mensal de marcas e campanhas.
func (s *BudgetResetService) RunMonthlyReset(dryRun bool) (*domain.ResetReport, error) {
	return s.runReset(domain.ResetPeriodMonthly, dryRun)
}

func (s *BudgetResetService) runReset(period domain.ResetPeriod, dryRun bool) (*domain.ResetReport, error) {
	s.resetMutex.Lock()
	if s.resetRunning {
		s.resetMutex.Unlock()
		logrus.WithField("period", period).Info("Reset de orçamento já em andamento, ignorando")
		return nil, nil
	}
	s.resetRunning = true
	startTime := time.Now()
	s.lastResetStartedAt = startTime
	s.resetMutex.Unlock()

	defer func() {
		s.resetMutex.Lock()
		s.resetRunning = false
		s.resetMutex.Unlock()
	}()

	logrus.WithFields(logrus.Fields{
		"period":  period,
		"dry_run": dryRun,
	}).Info("Iniciando reset de orçamento")

	jobName := fmt.Sprintf("%s_reset", period)

	var report *domain.ResetReport
	var err error
	if dryRun {
		report, err = s.simulateReset(period)
	} else {
		report, err = s.applyReset(period)
	}
	if err != nil {
		metrics.RecordJobRun(jobName, "failure", time.Since(startTime).Seconds())
		return nil, err
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"period":          period,
		"dry_run":         dryRun,
		"duration":        duration.String(),
		"brands_reset":    report.BrandsReset,
		"campaigns_reset": report.CampaignsReset,
		"reactivated":     report.Reactivated,
	}).Info("Reset de orçamento concluído")

	s.resetMutex.Lock()
	s.lastResetCompletedAt = time.Now()
	s.lastResetReport = *report
	s.resetMutex.Unlock()
	metrics.RecordJobRun(jobName, "success", duration.Seconds())

	return report, nil
}

// applyReset executa o reset de verdade: zera os caches em lote e reavalia
// todas as campanhas, contando as que saíram de budget_exceeded para active.
func (s *BudgetResetService) applyReset(period domain.ResetPeriod) (*domain.ResetReport, error) {
	var brandsReset, campaignsReset int64
	var err error

	switch period {
	case domain.ResetPeriodDaily:
		brandsReset, err = s.brandRepo.ResetDailySpends()
		if err == nil {
			campaignsReset, err = s.campaignRepo.ResetDailySpends()
		}
	case domain.ResetPeriodMonthly:
		brandsReset, err = s.brandRepo.ResetMonthlySpends()
		if err == nil {
			campaignsReset, err = s.campaignRepo.ResetMonthlySpends()
		}
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"period": period,
			"error":  err.Error(),
		}).Error("Erro ao zerar caches de gasto")
		return nil, err
	}

	// Buscar as campanhas depois do reset para avaliar com os caches zerados
	campaigns, err := s.campaignRepo.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas após reset de orçamento")
		return nil, err
	}

	reactivated := 0
	for _, campaign := range campaigns {
		previous := campaign.Status

		updated, err := s.pacer.EvaluateAndApply(campaign)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
				"error":       err.Error(),
			}).Error("Erro ao reavaliar campanha após reset. Pulando.")
			continue
		}

		if previous == domain.CampaignStatusBudgetExceeded && updated.Status == domain.CampaignStatusActive {
			reactivated++
		}
	}

	return &domain.ResetReport{
		Period:         period,
		DryRun:         false,
		BrandsReset:    int(brandsReset),
		CampaignsReset: int(campaignsReset),
		Reactivated:    reactivated,
	}, nil
}

// simulateReset calcula o relatório sem escrever nada no banco. As contagens
// usam Count para bater com o RowsAffected do UPDATE incondicional do reset
// real; a reativação é estimada aplicando o predicado ShouldBeActive sobre
// cópias em memória com o cache do período zerado.
func (s *BudgetResetService) simulateReset(period domain.ResetPeriod) (*domain.ResetReport, error) {
	brandsReset, err := s.brandRepo.Count()
	if err != nil {
		logrus.WithError(err).Error("Erro ao contar marcas para simulação de reset")
		return nil, err
	}

	campaignsReset, err := s.campaignRepo.Count()
	if err != nil {
		logrus.WithError(err).Error("Erro ao contar campanhas para simulação de reset")
		return nil, err
	}

	campaigns, err := s.campaignRepo.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas para simulação de reset")
		return nil, err
	}

	reactivated := 0
	for _, campaign := range campaigns {
		if campaign.Status != domain.CampaignStatusBudgetExceeded || campaign.Brand == nil {
			continue
		}

		// Cópias em memória com o cache do período zerado
		brandCopy := *campaign.Brand
		campaignCopy := *campaign
		switch period {
		case domain.ResetPeriodDaily:
			brandCopy.DailySpend = decimal.Zero
			campaignCopy.DailySpend = decimal.Zero
		case domain.ResetPeriodMonthly:
			brandCopy.MonthlySpend = decimal.Zero
			campaignCopy.MonthlySpend = decimal.Zero
		}
		campaignCopy.Brand = &brandCopy

		if s.pacer.ShouldBeActive(&campaignCopy) {
			reactivated++
		}
	}

	return &domain.ResetReport{
		Period:         period,
		DryRun:         true,
		BrandsReset:    brandsReset,
		CampaignsReset: campaignsReset,
		Reactivated:    reactivated,
	}, nil
}

// TriggerManualSync inicia manualmente um reset diário
func (s *BudgetResetService) TriggerManualSync() {
	s.resetMutex.Lock()
	if s.resetRunning {
		s.resetMutex.Unlock()
		logrus.Info("Reset de orçamento já em andamento, ignorando solicitação manual")
		return
	}
	s.resetMutex.Unlock()

	logrus.Info("Iniciando reset manual diário de orçamento")
	go s.RunDailyReset(false)
}

// GetStatus retorna o status atual do agendador
func (s *BudgetResetService) GetStatus() map[string]any {
	s.resetMutex.Lock()
	defer s.resetMutex.Unlock()

	return map[string]any{
		"reset_enabled":           s.config.ResetEnabled,
		"daily_cron":              s.config.DailyCronSchedule,
		"monthly_cron":            s.config.MonthlyCronSchedule,
		"last_reset_started_at":   s.lastResetStartedAt,
		"last_reset_completed_at": s.lastResetCompletedAt,
		"last_reset_report":       s.lastResetReport,
	}
}
