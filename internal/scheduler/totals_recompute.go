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
	"github.com/vfg2006/budget-planner-api/internal/metrics"
	"github.com/vfg2006/budget-planner-api/internal/usecases/budgeting"
)

// TotalsRecomputeConfig representa a configuração do agendador de recálculo de totais
type TotalsRecomputeConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// TotalsRecomputeService reconcilia periodicamente os caches de gasto com o
// log de eventos, corrigindo qualquer desvio acumulado entre varreduras.
type TotalsRecomputeService struct {
	scheduler           *gocron.Scheduler
	config              TotalsRecomputeConfig
	brandRepo           repository.BrandRepository
	campaignRepo        repository.CampaignRepository
	ledger              budgeting.Ledger
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewTotalsRecomputeService cria uma nova instância do serviço de recálculo de totais
func NewTotalsRecomputeService(
	brandRepo repository.BrandRepository,
	campaignRepo repository.CampaignRepository,
	ledger budgeting.Ledger,
	appConfig *config.Config,
	location *time.Location,
) *TotalsRecomputeService {
	totalsConfig := TotalsRecomputeConfig{
		CronSchedule: appConfig.TotalsSweep.CronSchedule,
		SyncEnabled:  appConfig.TotalsSweep.Enabled,
	}

	if location == nil {
		location = time.UTC
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": totalsConfig.CronSchedule,
		"sync_enabled":  totalsConfig.SyncEnabled,
	}).Info("Configuração do agendador de recálculo de totais carregada")

	return &TotalsRecomputeService{
		scheduler:    gocron.NewScheduler(location),
		config:       totalsConfig,
		brandRepo:    brandRepo,
		campaignRepo: campaignRepo,
		ledger:       ledger,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *TotalsRecomputeService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recálculo periódico de totais desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recálculo de totais")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunTotalsRecompute()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo de totais: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recálculo de totais")
		s.scheduler.Stop()
	}()

	return nil
}

// RunTotalsRecompute recalcula os caches de todas as campanhas e depois de
// todas as marcas, sempre direto do log de eventos.
func (s *TotalsRecomputeService) RunTotalsRecompute() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo de totais já em andamento, ignorando")
		return nil
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando recálculo de totais de gasto")

	campaigns, err := s.campaignRepo.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas para recálculo de totais")
		metrics.RecordJobRun("totals_recompute", "failure", time.Since(startTime).Seconds())
		return err
	}

	recomputedCampaigns := 0
	for _, campaign := range campaigns {
		if err := s.ledger.RecomputeCampaign(campaign); err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
				"error":       err.Error(),
			}).Error("Erro ao recalcular gastos da campanha. Pulando.")
			continue
		}
		recomputedCampaigns++
	}

	brands, err := s.brandRepo.List()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar marcas para recálculo de totais")
		metrics.RecordJobRun("totals_recompute", "failure", time.Since(startTime).Seconds())
		return err
	}

	recomputedBrands := 0
	for _, brand := range brands {
		if err := s.ledger.RecomputeBrand(brand); err != nil {
			logrus.WithFields(logrus.Fields{
				"brand_id": brand.ID,
				"error":    err.Error(),
			}).Error("Erro ao recalcular gastos da marca. Pulando.")
			continue
		}
		recomputedBrands++
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"campaigns": recomputedCampaigns,
		"brands":    recomputedBrands,
	}).Info("Recálculo de totais concluído")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
	metrics.RecordJobRun("totals_recompute", "success", duration.Seconds())

	return nil
}

// TriggerManualSync inicia manualmente um recálculo de totais
func (s *TotalsRecomputeService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo de totais já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recálculo manual de totais")
	go s.RunTotalsRecompute()
}

// GetStatus retorna o status atual do agendador
func (s *TotalsRecomputeService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
