package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-planner-api/internal/scheduler"
	"github.com/vfg2006/budget-planner-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeStatusSweep  = "status-sweep"
	CronJobTypeTotals       = "totals"
	CronJobTypeDailyReset   = "daily-reset"
	CronJobTypeMonthlyReset = "monthly-reset"
	CronJobTypeAlerts       = "alerts"
	CronJobTypeAll          = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	StatusSweepService     *scheduler.StatusSweepService
	TotalsRecomputeService *scheduler.TotalsRecomputeService
	BudgetResetService     *scheduler.BudgetResetService
	BudgetAlertsService    *scheduler.BudgetAlertsService
}

// RunCronJob executa manualmente uma cron job específica. Os resets aceitam
// ?dry_run=true e nesse caso respondem o relatório de forma síncrona, sem
// escrever nada.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run"))

		w.Header().Set("Content-Type", "application/json")

		switch cronType {
		case CronJobTypeStatusSweep:
			if services.StatusSweepService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de varredura de status não disponível", nil)
				return
			}
			services.StatusSweepService.TriggerManualSync()

		case CronJobTypeTotals:
			if services.TotalsRecomputeService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recálculo de totais não disponível", nil)
				return
			}
			services.TotalsRecomputeService.TriggerManualSync()

		case CronJobTypeDailyReset, CronJobTypeMonthlyReset:
			if services.BudgetResetService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de reset de orçamento não disponível", nil)
				return
			}
			if dryRun {
				runResetDryRun(w, services.BudgetResetService, cronType)
				return
			}
			if cronType == CronJobTypeDailyReset {
				go services.BudgetResetService.RunDailyReset(false)
			} else {
				go services.BudgetResetService.RunMonthlyReset(false)
			}

		case CronJobTypeAlerts:
			if services.BudgetAlertsService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de alertas de orçamento não disponível", nil)
				return
			}
			services.BudgetAlertsService.TriggerManualSync()

		case CronJobTypeAll:
			if services.StatusSweepService != nil {
				services.StatusSweepService.TriggerManualSync()
			}
			if services.TotalsRecomputeService != nil {
				services.TotalsRecomputeService.TriggerManualSync()
			}
			if services.BudgetAlertsService != nil {
				services.BudgetAlertsService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: status-sweep, totals, daily-reset, monthly-reset, alerts, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

func runResetDryRun(w http.ResponseWriter, service *scheduler.BudgetResetService, cronType string) {
	var err error
	var report any
	if cronType == CronJobTypeDailyReset {
		report, err = service.RunDailyReset(true)
	} else {
		report, err = service.RunMonthlyReset(true)
	}
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao simular reset de orçamento", nil)
		return
	}

	json.NewEncoder(w).Encode(report)
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"status-sweep": services.StatusSweepService.GetStatus(),
			"totals":       services.TotalsRecomputeService.GetStatus(),
			"reset":        services.BudgetResetService.GetStatus(),
			"alerts":       services.BudgetAlertsService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
