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
	"github.com/vfg2006/budget-planner-api/pkg/utils"
)

// BudgetAlertsConfig representa a configuração do agendador de alertas de orçamento
type BudgetAlertsConfig struct {
	CronSchedule string
	Threshold    float64
	ScanEnabled  bool
}

// BudgetAlertsService varre as marcas ativas procurando orçamentos perto do
// teto. Alertas são diagnósticos: logados e expostos no status, nunca
// persistidos.
type BudgetAlertsService struct {
	scheduler           *gocron.Scheduler
	config              BudgetAlertsConfig
	brandRepo           repository.BrandRepository
	scanRunning         bool
	scanMutex           sync.Mutex
	lastScanStartedAt   time.Time
	lastScanCompletedAt time.Time
	lastScanAlerts      []domain.BudgetAlert
}

// NewBudgetAlertsService cria uma nova instância do serviço de alertas de orçamento
func NewBudgetAlertsService(
	brandRepo repository.BrandRepository,
	appConfig *config.Config,
	location *time.Location,
) *BudgetAlertsService {
	alertsConfig := BudgetAlertsConfig{
		CronSchedule: appConfig.BudgetAlerts.CronSchedule,
		Threshold:    appConfig.BudgetAlerts.Threshold,
		ScanEnabled:  appConfig.BudgetAlerts.Enabled,
	}

	if location == nil {
		location = time.UTC
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": alertsConfig.CronSchedule,
		"threshold":     alertsConfig.Threshold,
		"scan_enabled":  alertsConfig.ScanEnabled,
	}).Info("Configuração do agendador de alertas de orçamento carregada")

	return &BudgetAlertsService{
		scheduler:   gocron.NewScheduler(location),
		config:      alertsConfig,
		brandRepo:   brandRepo,
		scanRunning: false,
	}
}

// Start inicia o agendador
func (s *BudgetAlertsService) Start(ctx context.Context) error {
	if !s.config.ScanEnabled {
		logrus.Info("Alertas de orçamento desabilitados por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de alertas de orçamento")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunAlertScan()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar alertas de orçamento: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de alertas de orçamento")
		s.scheduler.Stop()
	}()

	return nil
}

// RunAlertScan varre as marcas ativas e retorna os alertas emitidos.
func (s *BudgetAlertsService) RunAlertScan() ([]domain.BudgetAlert, error) {
	s.scanMutex.Lock()
	if s.scanRunning {
		s.scanMutex.Unlock()
		logrus.Info("Varredura de alertas já em andamento, ignorando")
		return nil, nil
	}
	s.scanRunning = true
	startTime := time.Now()
	s.lastScanStartedAt = startTime
	s.scanMutex.Unlock()

	defer func() {
		s.scanMutex.Lock()
		s.scanRunning = false
		s.scanMutex.Unlock()
	}()

	logrus.Info("Iniciando varredura de alertas de orçamento")

	brands, err := s.brandRepo.ListActive()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar marcas para varredura de alertas")
		metrics.RecordJobRun("budget_alerts", "failure", time.Since(startTime).Seconds())
		return nil, err
	}

	alerts := s.scanBrands(brands)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"brands":   len(brands),
		"alerts":   len(alerts),
	}).Info("Varredura de alertas de orçamento concluída")

	s.scanMutex.Lock()
	s.lastScanCompletedAt = time.Now()
	s.lastScanAlerts = alerts
	s.scanMutex.Unlock()
	metrics.RecordJobRun("budget_alerts", "success", duration.Seconds())

	return alerts, nil
}

func (s *BudgetAlertsService) scanBrands(brands []*domain.Brand) []domain.BudgetAlert {
	alerts := make([]domain.BudgetAlert, 0)

	for _, brand := range brands {
		if alert := s.checkBudget(brand, domain.AlertTypeDailyBudgetWarning, brand.DailySpend, brand.DailyBudget); alert != nil {
			alerts = append(alerts, *alert)
		}
		if alert := s.checkBudget(brand, domain.AlertTypeMonthlyBudgetWarning, brand.MonthlySpend, brand.MonthlyBudget); alert != nil {
			alerts = append(alerts, *alert)
		}
	}

	return alerts
}

// checkBudget emite um alerta quando o gasto atinge o limiar do teto. Teto
// zero reporta 0% de uso: a pausa dessas marcas é papel da máquina de status,
// não do alerta.
func (s *BudgetAlertsService) checkBudget(brand *domain.Brand, alertType string, spend, budget decimal.Decimal) *domain.BudgetAlert {
	if budget.IsZero() {
		return nil
	}

	// O limiar da configuração é fração (0.9); o alerta reporta percentual
	fractionUsed := spend.Div(budget).InexactFloat64()
	if fractionUsed < s.config.Threshold {
		return nil
	}

	alert := &domain.BudgetAlert{
		Type:        alertType,
		Brand:       brand.Name,
		PercentUsed: utils.RoundWithTwoDecimalPlace(fractionUsed * 100),
		Spend:       spend.InexactFloat64(),
		Budget:      budget.InexactFloat64(),
	}

	logrus.WithFields(logrus.Fields{
		"type":         alert.Type,
		"brand":        alert.Brand,
		"percent_used": fmt.Sprintf("%.1f%%", alert.PercentUsed),
		"spend":        alert.Spend,
		"budget":       alert.Budget,
	}).Warn("Marca se aproximando do teto de orçamento")

	metrics.BudgetAlertsEmitted.WithLabelValues(alert.Type).Inc()

	return alert
}

// TriggerManualSync inicia manualmente uma varredura de alertas
func (s *BudgetAlertsService) TriggerManualSync() {
	s.scanMutex.Lock()
	if s.scanRunning {
		s.scanMutex.Unlock()
		logrus.Info("Varredura de alertas já em andamento, ignorando solicitação manual")
		return
	}
	s.scanMutex.Unlock()

	logrus.Info("Iniciando varredura manual de alertas de orçamento")
	go s.RunAlertScan()
}

// GetStatus retorna o status atual do agendador
func (s *BudgetAlertsService) GetStatus() map[string]any {
	s.scanMutex.Lock()
	defer s.scanMutex.Unlock()

	return map[string]any{
		"scan_enabled":           s.config.ScanEnabled,
		"scan_cron":              s.config.CronSchedule,
		"scan_threshold":         s.config.Threshold,
		"last_scan_started_at":   s.lastScanStartedAt,
		"last_scan_completed_at": s.lastScanCompletedAt,
		"last_scan_alerts":       s.lastScanAlerts,
	}
}
