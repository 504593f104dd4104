package managing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	repomocks "github.com/vfg2006/budget-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	pacingmocks "github.com/vfg2006/budget-planner-api/internal/usecases/pacing/mocks"
	"go.uber.org/mock/gomock"
)

type managingMocks struct {
	brandRepo      *repomocks.MockBrandRepository
	campaignRepo   *repomocks.MockCampaignRepository
	spendEventRepo *repomocks.MockSpendEventRepository
	pacer          *pacingmocks.MockPacer
}

func newServiceWithMocks(ctrl *gomock.Controller) (Manager, *managingMocks) {
	m := &managingMocks{
		brandRepo:      repomocks.NewMockBrandRepository(ctrl),
		campaignRepo:   repomocks.NewMockCampaignRepository(ctrl),
		spendEventRepo: repomocks.NewMockSpendEventRepository(ctrl),
		pacer:          pacingmocks.NewMockPacer(ctrl),
	}
	return NewService(m.brandRepo, m.campaignRepo, m.spendEventRepo, m.pacer), m
}

func testBrand() *domain.Brand {
	return &domain.Brand{
		ID:            "BRAND01",
		Name:          "Marca Teste",
		DailyBudget:   decimal.NewFromInt(100),
		MonthlyBudget: decimal.NewFromInt(2000),
		IsActive:      true,
	}
}

func TestService_CreateBrand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	t.Run("Nome obrigatório", func(t *testing.T) {
		_, err := service.CreateBrand(&domain.CreateBrandRequest{
			DailyBudget:   decimal.NewFromInt(10),
			MonthlyBudget: decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("Orçamento negativo é rejeitado", func(t *testing.T) {
		_, err := service.CreateBrand(&domain.CreateBrandRequest{
			Name:          "Marca Teste",
			DailyBudget:   decimal.NewFromInt(-10),
			MonthlyBudget: decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, ErrNegativeBudget)
	})

	t.Run("Nome duplicado", func(t *testing.T) {
		m.brandRepo.EXPECT().Create(gomock.Any()).Return(repository.ErrDuplicate)

		_, err := service.CreateBrand(&domain.CreateBrandRequest{
			Name:          "Marca Teste",
			DailyBudget:   decimal.NewFromInt(10),
			MonthlyBudget: decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("Marca nasce ativa e com ID gerado", func(t *testing.T) {
		m.brandRepo.EXPECT().Create(gomock.Any()).
			DoAndReturn(func(brand *domain.Brand) error {
				assert.NotEmpty(t, brand.ID)
				assert.True(t, brand.IsActive)
				return nil
			})

		brand, err := service.CreateBrand(&domain.CreateBrandRequest{
			Name:          "Marca Teste",
			DailyBudget:   decimal.NewFromInt(10),
			MonthlyBudget: decimal.NewFromInt(100),
		})
		assert.NoError(t, err)
		assert.Equal(t, "Marca Teste", brand.Name)
	})
}

func TestService_UpdateBrand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	t.Run("Marca inexistente", func(t *testing.T) {
		m.brandRepo.EXPECT().GetByID("BRAND99").Return(nil, nil)

		_, err := service.UpdateBrand(&domain.UpdateBrandRequest{ID: "BRAND99"})
		assert.ErrorIs(t, err, ErrBrandNotFound)
	})

	t.Run("Atualização parcial preserva os demais campos", func(t *testing.T) {
		m.brandRepo.EXPECT().GetByID("BRAND01").Return(testBrand(), nil)

		newDaily := decimal.NewFromInt(250)
		m.brandRepo.EXPECT().Update(gomock.Any()).
			DoAndReturn(func(brand *domain.Brand) error {
				assert.True(t, brand.DailyBudget.Equal(newDaily))
				assert.Equal(t, "Marca Teste", brand.Name)
				return nil
			})

		brand, err := service.UpdateBrand(&domain.UpdateBrandRequest{
			ID:          "BRAND01",
			DailyBudget: &newDaily,
		})
		assert.NoError(t, err)
		assert.True(t, brand.DailyBudget.Equal(newDaily))
	})
}

func TestService_CreateCampaign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	t.Run("Marca inexistente", func(t *testing.T) {
		m.brandRepo.EXPECT().GetByID("BRAND99").Return(nil, nil)

		_, err := service.CreateCampaign(&domain.CreateCampaignRequest{
			BrandID: "BRAND99",
			Name:    "Campanha Teste",
		})
		assert.ErrorIs(t, err, ErrBrandNotFound)
	})

	t.Run("Cronograma inválido é rejeitado antes de persistir", func(t *testing.T) {
		m.brandRepo.EXPECT().GetByID("BRAND01").Return(testBrand(), nil)

		_, err := service.CreateCampaign(&domain.CreateCampaignRequest{
			BrandID:           "BRAND01",
			Name:              "Campanha Teste",
			DaypartingEnabled: true,
			DaypartingSchedule: domain.DaypartingSchedule{
				"segunda": {{Start: "09:00", End: "18:00"}},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("Campanha nasce pela máquina de status", func(t *testing.T) {
		m.brandRepo.EXPECT().GetByID("BRAND01").Return(testBrand(), nil)
		m.campaignRepo.EXPECT().Create(gomock.Any()).Return(nil)
		m.pacer.EXPECT().EvaluateAndApply(gomock.Any()).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				assert.Equal(t, domain.CampaignStatusActive, c.Status)
				return c, nil
			})

		campaign, err := service.CreateCampaign(&domain.CreateCampaignRequest{
			BrandID: "BRAND01",
			Name:    "Campanha Teste",
		})
		assert.NoError(t, err)
		assert.Equal(t, "BRAND01", campaign.BrandID)
	})
}

func TestService_ListCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	t.Run("Filtro de status desconhecido", func(t *testing.T) {
		_, err := service.ListCampaigns(domain.CampaignStatus("rodando"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Sem filtro lista todas", func(t *testing.T) {
		m.campaignRepo.EXPECT().ListAll().Return([]*domain.Campaign{{ID: "CAMP01"}}, nil)

		campaigns, err := service.ListCampaigns("")
		assert.NoError(t, err)
		assert.Len(t, campaigns, 1)
	})

	t.Run("Com filtro delega ao repositório", func(t *testing.T) {
		m.campaignRepo.EXPECT().
			ListByStatus(domain.CampaignStatusPaused).
			Return([]*domain.Campaign{}, nil)

		campaigns, err := service.ListCampaigns(domain.CampaignStatusPaused)
		assert.NoError(t, err)
		assert.Empty(t, campaigns)
	})
}

func TestService_SetCampaignStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	t.Run("Apenas paused e active são aceitos", func(t *testing.T) {
		_, err := service.SetCampaignStatus("CAMP01", domain.CampaignStatusBudgetExceeded)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Pausar grava direto sem passar pela máquina", func(t *testing.T) {
		campaign := &domain.Campaign{ID: "CAMP01", Status: domain.CampaignStatusActive}

		m.campaignRepo.EXPECT().GetByID("CAMP01").Return(campaign, nil)
		m.campaignRepo.EXPECT().
			UpdateStatus("CAMP01", domain.CampaignStatusPaused).
			Return(nil)

		updated, err := service.SetCampaignStatus("CAMP01", domain.CampaignStatusPaused)
		assert.NoError(t, err)
		assert.Equal(t, domain.CampaignStatusPaused, updated.Status)
	})

	t.Run("Retomar passa pela máquina e pode cair em budget_exceeded", func(t *testing.T) {
		campaign := &domain.Campaign{ID: "CAMP01", Status: domain.CampaignStatusPaused}

		m.campaignRepo.EXPECT().GetByID("CAMP01").Return(campaign, nil)
		m.pacer.EXPECT().EvaluateAndApply(campaign).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				assert.Equal(t, domain.CampaignStatusActive, c.Status)
				c.Status = domain.CampaignStatusBudgetExceeded
				return c, nil
			})

		updated, err := service.SetCampaignStatus("CAMP01", domain.CampaignStatusActive)
		assert.NoError(t, err)
		assert.Equal(t, domain.CampaignStatusBudgetExceeded, updated.Status)
	})
}

func TestService_ListCampaignSpends(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	t.Run("Campanha inexistente", func(t *testing.T) {
		m.campaignRepo.EXPECT().GetByID("CAMP99").Return(nil, nil)

		_, err := service.ListCampaignSpends("CAMP99", 50)
		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})

	t.Run("Delega o limite ao repositório", func(t *testing.T) {
		m.campaignRepo.EXPECT().GetByID("CAMP01").Return(&domain.Campaign{ID: "CAMP01"}, nil)
		m.spendEventRepo.EXPECT().
			ListByCampaign("CAMP01", uint64(10)).
			Return([]*domain.SpendEvent{{ID: "EVT01"}}, nil)

		events, err := service.ListCampaignSpends("CAMP01", 10)
		assert.NoError(t, err)
		assert.Len(t, events, 1)
	})
}
