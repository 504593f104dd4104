package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/internal/usecases/spending"
	"github.com/vfg2006/budget-planner-api/pkg/apiErrors"
)

// RecordSpend registra um evento de gasto contra uma campanha
func RecordSpend(service spending.Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.RecordSpendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if req.CampaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha é obrigatório", nil)
			return
		}

		event, err := service.RecordSpend(req.CampaignID, req.Amount, req.Description)
		if err != nil {
			logrus.Error("Erro ao registrar gasto:", err)
			writeSpendError(w, err, req.CampaignID)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(event); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func writeSpendError(w http.ResponseWriter, err error, campaignID string) {
	var spendErr *spending.SpendError
	if errors.As(err, &spendErr) {
		apiErrors.WriteError(w, spendErr.Code, spendErr.Error(), map[string]any{
			"campaign_id": spendErr.CampaignID,
		})
		return
	}

	switch {
	case errors.Is(err, spending.ErrCampaignNotFound):
		apiErrors.WriteError(w, apiErrors.ErrCampaignNotFound, "Campanha não encontrada", map[string]any{
			"campaign_id": campaignID,
		})

	case errors.Is(err, spending.ErrNegativeAmount):
		apiErrors.WriteError(w, apiErrors.ErrNegativeAmount, "Valor de gasto não pode ser negativo", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao registrar gasto", nil)
	}
}
