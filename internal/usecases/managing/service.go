// Package managing cobre o CRUD administrativo de marcas e campanhas,
// validando os dados antes de persistir e mantendo o status das campanhas
// coerente após cada mudança.
package managing

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/internal/usecases/dayparting"
	"github.com/vfg2006/budget-planner-api/internal/usecases/pacing"
	"github.com/vfg2006/budget-planner-api/pkg/apiErrors"
)

type Manager interface {
	CreateBrand(req *domain.CreateBrandRequest) (*domain.Brand, error)
	ListBrands() ([]*domain.Brand, error)
	GetBrand(id string) (*domain.Brand, error)
	UpdateBrand(req *domain.UpdateBrandRequest) (*domain.Brand, error)
	DeleteBrand(id string) error

	CreateCampaign(req *domain.CreateCampaignRequest) (*domain.Campaign, error)
	ListCampaigns(status domain.CampaignStatus) ([]*domain.Campaign, error)
	GetCampaign(id string) (*domain.Campaign, error)
	UpdateCampaign(req *domain.UpdateCampaignRequest) (*domain.Campaign, error)
	SetCampaignStatus(id string, status domain.CampaignStatus) (*domain.Campaign, error)
	DeleteCampaign(id string) error
	ListCampaignSpends(id string, limit uint64) ([]*domain.SpendEvent, error)
}

type Service struct {
	brandRepo      repository.BrandRepository
	campaignRepo   repository.CampaignRepository
	spendEventRepo repository.SpendEventRepository
	pacer          pacing.Pacer
}

func NewService(
	brandRepo repository.BrandRepository,
	campaignRepo repository.CampaignRepository,
	spendEventRepo repository.SpendEventRepository,
	pacer pacing.Pacer,
) Manager {
	return &Service{
		brandRepo:      brandRepo,
		campaignRepo:   campaignRepo,
		spendEventRepo: spendEventRepo,
		pacer:          pacer,
	}
}

func (s *Service) CreateBrand(req *domain.CreateBrandRequest) (*domain.Brand, error) {
	if req.Name == "" {
		return nil, NewManagementError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome da marca é obrigatório")
	}
	if req.DailyBudget.IsNegative() || req.MonthlyBudget.IsNegative() {
		return nil, NewManagementError(ErrNegativeBudget, apiErrors.ErrInvalidRequest, "Orçamentos devem ser não negativos")
	}

	brand := &domain.Brand{
		ID:            uuid.NewString(),
		Name:          req.Name,
		DailyBudget:   req.DailyBudget,
		MonthlyBudget: req.MonthlyBudget,
		IsActive:      true,
	}

	if err := s.brandRepo.Create(brand); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewManagementError(ErrDuplicateName, apiErrors.ErrDuplicateName, "Já existe uma marca com esse nome")
		}
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar marca")
	}

	logrus.WithFields(logrus.Fields{
		"brand_id": brand.ID,
		"name":     brand.Name,
	}).Info("Marca criada")

	return brand, nil
}

func (s *Service) ListBrands() ([]*domain.Brand, error) {
	brands, err := s.brandRepo.List()
	if err != nil {
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar marcas")
	}
	return brands, nil
}

func (s *Service) GetBrand(id string) (*domain.Brand, error) {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar marca")
	}
	if brand == nil {
		return nil, NewManagementError(ErrBrandNotFound, apiErrors.ErrBrandNotFound, "")
	}
	return brand, nil
}

// UpdateBrand aplica os campos presentes do request. Desativar a marca não
// mexe nas campanhas aqui: a próxima varredura de status as move para
// inactive.
func (s *Service) UpdateBrand(req *domain.UpdateBrandRequest) (*domain.Brand, error) {
	brand, err := s.GetBrand(req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, NewManagementError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome da marca não pode ser vazio")
		}
		brand.Name = *req.Name
	}
	if req.DailyBudget != nil {
		if req.DailyBudget.IsNegative() {
			return nil, NewManagementError(ErrNegativeBudget, apiErrors.ErrInvalidRequest, "Orçamento diário deve ser não negativo")
		}
		brand.DailyBudget = *req.DailyBudget
	}
	if req.MonthlyBudget != nil {
		if req.MonthlyBudget.IsNegative() {
			return nil, NewManagementError(ErrNegativeBudget, apiErrors.ErrInvalidRequest, "Orçamento mensal deve ser não negativo")
		}
		brand.MonthlyBudget = *req.MonthlyBudget
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}

	if err := s.brandRepo.Update(brand); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewManagementError(ErrDuplicateName, apiErrors.ErrDuplicateName, "Já existe uma marca com esse nome")
		}
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao atualizar marca")
	}

	return brand, nil
}

func (s *Service) DeleteBrand(id string) error {
	brand, err := s.GetBrand(id)
	if err != nil {
		return err
	}

	if err := s.brandRepo.Delete(brand.ID); err != nil {
		return NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao remover marca")
	}

	logrus.WithField("brand_id", brand.ID).Info("Marca removida")
	return nil
}

// CreateCampaign cria a campanha e já aplica a máquina de status, para que
// campanhas de marcas estouradas ou fora de janela nasçam pausadas.
func (s *Service) CreateCampaign(req *domain.CreateCampaignRequest) (*domain.Campaign, error) {
	if req.BrandID == "" {
		return nil, NewManagementError(ErrBrandIDRequired, apiErrors.ErrMissingRequiredData, "ID da marca é obrigatório")
	}
	if req.Name == "" {
		return nil, NewManagementError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome da campanha é obrigatório")
	}

	brand, err := s.GetBrand(req.BrandID)
	if err != nil {
		return nil, err
	}

	if req.DaypartingEnabled {
		if err := dayparting.ValidateSchedule(req.DaypartingSchedule); err != nil {
			return nil, NewManagementError(ErrInvalidSchedule, apiErrors.ErrInvalidFormat, err.Error())
		}
	}

	campaign := &domain.Campaign{
		ID:                 uuid.NewString(),
		BrandID:            brand.ID,
		Name:               req.Name,
		Status:             domain.CampaignStatusActive,
		DaypartingEnabled:  req.DaypartingEnabled,
		DaypartingSchedule: req.DaypartingSchedule,
		Brand:              brand,
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewManagementError(ErrDuplicateName, apiErrors.ErrDuplicateName, "Já existe uma campanha com esse nome na marca")
		}
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar campanha")
	}

	campaign, err = s.pacer.EvaluateAndApply(campaign)
	if err != nil {
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao avaliar status inicial da campanha")
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"brand_id":    campaign.BrandID,
		"name":        campaign.Name,
		"status":      campaign.Status,
	}).Info("Campanha criada")

	return campaign, nil
}

func (s *Service) ListCampaigns(status domain.CampaignStatus) ([]*domain.Campaign, error) {
	if status != "" && !status.Valid() {
		return nil, NewManagementError(ErrInvalidStatus, apiErrors.ErrInvalidRequest, string(status))
	}

	var campaigns []*domain.Campaign
	var err error
	if status == "" {
		campaigns, err = s.campaignRepo.ListAll()
	} else {
		campaigns, err = s.campaignRepo.ListByStatus(status)
	}
	if err != nil {
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar campanhas")
	}

	return campaigns, nil
}

func (s *Service) GetCampaign(id string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar campanha")
	}
	if campaign == nil {
		return nil, NewManagementError(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, "")
	}
	return campaign, nil
}

func (s *Service) UpdateCampaign(req *domain.UpdateCampaignRequest) (*domain.Campaign, error) {
	campaign, err := s.GetCampaign(req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, NewManagementError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome da campanha não pode ser vazio")
		}
		campaign.Name = *req.Name
	}
	if req.DaypartingEnabled != nil {
		campaign.DaypartingEnabled = *req.DaypartingEnabled
	}
	if req.DaypartingSchedule != nil {
		campaign.DaypartingSchedule = *req.DaypartingSchedule
	}

	if campaign.DaypartingEnabled {
		if err := dayparting.ValidateSchedule(campaign.DaypartingSchedule); err != nil {
			return nil, NewManagementError(ErrInvalidSchedule, apiErrors.ErrInvalidFormat, err.Error())
		}
	}

	if err := s.campaignRepo.Update(campaign); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewManagementError(ErrDuplicateName, apiErrors.ErrDuplicateName, "Já existe uma campanha com esse nome na marca")
		}
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao atualizar campanha")
	}

	// Mudança de cronograma pode tirar ou devolver a campanha à janela
	campaign, err = s.pacer.EvaluateAndApply(campaign)
	if err != nil {
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao reavaliar status da campanha")
	}

	return campaign, nil
}

// SetCampaignStatus é o override manual do operador. Só aceita paused e
// active; os demais estados são computados pela máquina. Retomar (active)
// passa pela máquina: a campanha pode cair direto em budget_exceeded ou
// dayparting_paused se a condição ainda valer.
func (s *Service) SetCampaignStatus(id string, status domain.CampaignStatus) (*domain.Campaign, error) {
	if status != domain.CampaignStatusPaused && status != domain.CampaignStatusActive {
		return nil, NewManagementError(ErrInvalidStatus, apiErrors.ErrInvalidRequest, "Apenas paused e active são aceitos")
	}

	campaign, err := s.GetCampaign(id)
	if err != nil {
		return nil, err
	}

	if status == domain.CampaignStatusPaused {
		if err := s.campaignRepo.UpdateStatus(campaign.ID, domain.CampaignStatusPaused); err != nil {
			return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao pausar campanha")
		}
		campaign.Status = domain.CampaignStatusPaused

		logrus.WithField("campaign_id", campaign.ID).Info("Campanha pausada pelo operador")
		return campaign, nil
	}

	campaign.Status = domain.CampaignStatusActive
	campaign, err = s.pacer.EvaluateAndApply(campaign)
	if err != nil {
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao retomar campanha")
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"status":      campaign.Status,
	}).Info("Campanha retomada pelo operador")

	return campaign, nil
}

func (s *Service) DeleteCampaign(id string) error {
	campaign, err := s.GetCampaign(id)
	if err != nil {
		return err
	}

	if err := s.campaignRepo.Delete(campaign.ID); err != nil {
		return NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao remover campanha")
	}

	logrus.WithField("campaign_id", campaign.ID).Info("Campanha removida")
	return nil
}

func (s *Service) ListCampaignSpends(id string, limit uint64) ([]*domain.SpendEvent, error) {
	campaign, err := s.GetCampaign(id)
	if err != nil {
		return nil, err
	}

	events, err := s.spendEventRepo.ListByCampaign(campaign.ID, limit)
	if err != nil {
		return nil, NewManagementError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar eventos de gasto")
	}

	return events, nil
}
