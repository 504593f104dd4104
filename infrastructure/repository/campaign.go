package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

const (
	campaignsTable = "campaigns c"

	// Colunas da campanha mais as da marca dona, para hidratar o join
	campaignJoinColumns = `c.id, c.brand_id, c.name, c.status, c.daily_spend, c.monthly_spend,
		c.dayparting_enabled, c.dayparting_schedule, c.created_at, c.updated_at,
		b.id, b.name, b.daily_budget, b.monthly_budget, b.daily_spend, b.monthly_spend, b.is_active, b.created_at, b.updated_at`
)

type CampaignRepository interface {
	Create(campaign *domain.Campaign) error
	GetByID(id string) (*domain.Campaign, error)
	ListAll() ([]*domain.Campaign, error)
	ListByStatus(status domain.CampaignStatus) ([]*domain.Campaign, error)
	Count() (int, error)
	Update(campaign *domain.Campaign) error
	UpdateSpends(id string, dailySpend, monthlySpend decimal.Decimal) error
	UpdateStatus(id string, status domain.CampaignStatus) error
	ResetDailySpends() (int64, error)
	ResetMonthlySpends() (int64, error)
	Delete(id string) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) Create(campaign *domain.Campaign) error {
	scheduleJSON, err := marshalSchedule(campaign.DaypartingSchedule)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert("campaigns").
		Columns("id", "brand_id", "name", "status", "daily_spend", "monthly_spend", "dayparting_enabled", "dayparting_schedule").
		Values(
			campaign.ID,
			campaign.BrandID,
			campaign.Name,
			campaign.Status,
			campaign.DailySpend,
			campaign.MonthlySpend,
			campaign.DaypartingEnabled,
			scheduleJSON,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("erro ao inserir campanha: %w", err)
	}

	return nil
}

func (r *campaignRepository) GetByID(id string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignJoinColumns).
		From(campaignsTable).
		Join("brands b ON b.id = c.brand_id").
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
		}
		return nil, nil
	}

	campaign, err := scanCampaignWithBrand(rows)
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

// ListAll retorna todas as campanhas com a marca dona preenchida, na ordem
// usada pelas varreduras.
func (r *campaignRepository) ListAll() ([]*domain.Campaign, error) {
	return r.list(squirrel.
		Select(campaignJoinColumns).
		From(campaignsTable).
		Join("brands b ON b.id = c.brand_id").
		OrderBy("b.name ASC, c.name ASC"))
}

// ListByStatus retorna campanhas no status informado, restritas a marcas
// ativas quando o status é active.
func (r *campaignRepository) ListByStatus(status domain.CampaignStatus) ([]*domain.Campaign, error) {
	builder := squirrel.
		Select(campaignJoinColumns).
		From(campaignsTable).
		Join("brands b ON b.id = c.brand_id").
		Where(squirrel.Eq{"c.status": status}).
		OrderBy("b.name ASC, c.name ASC")

	if status == domain.CampaignStatusActive {
		builder = builder.Where(squirrel.Eq{"b.is_active": true})
	}

	return r.list(builder)
}

func (r *campaignRepository) list(builder squirrel.SelectBuilder) ([]*domain.Campaign, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaignWithBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) Count() (int, error) {
	var count int
	err := r.conn.QueryRow("SELECT COUNT(*) FROM campaigns").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar campanhas: %w", err)
	}
	return count, nil
}

func (r *campaignRepository) Update(campaign *domain.Campaign) error {
	scheduleJSON, err := marshalSchedule(campaign.DaypartingSchedule)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Update("campaigns").
		Set("name", campaign.Name).
		Set("dayparting_enabled", campaign.DaypartingEnabled).
		Set("dayparting_schedule", scheduleJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": campaign.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("erro ao atualizar campanha: %w", err)
	}

	return nil
}

// UpdateSpends persiste os caches de gasto recalculados junto com updated_at.
func (r *campaignRepository) UpdateSpends(id string, dailySpend, monthlySpend decimal.Decimal) error {
	query, args, err := squirrel.
		Update("campaigns").
		Set("daily_spend", dailySpend).
		Set("monthly_spend", monthlySpend).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar gastos da campanha: %w", err)
	}

	return nil
}

// UpdateStatus grava o status junto com updated_at mesmo quando o valor não
// mudou (escrita idempotente da máquina de status).
func (r *campaignRepository) UpdateStatus(id string, status domain.CampaignStatus) error {
	query, args, err := squirrel.
		Update("campaigns").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status da campanha: %w", err)
	}

	return nil
}

func (r *campaignRepository) ResetDailySpends() (int64, error) {
	return r.resetSpends("daily_spend")
}

func (r *campaignRepository) ResetMonthlySpends() (int64, error) {
	return r.resetSpends("monthly_spend")
}

func (r *campaignRepository) resetSpends(column string) (int64, error) {
	query := fmt.Sprintf("UPDATE campaigns SET %s = 0, updated_at = NOW()", column)

	result, err := r.conn.Exec(query)
	if err != nil {
		return 0, fmt.Errorf("erro ao zerar gastos das campanhas: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *campaignRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete("campaigns").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	// Eventos de gasto são removidos em cascata pelo banco
	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover campanha: %w", err)
	}

	return nil
}

func marshalSchedule(schedule domain.DaypartingSchedule) ([]byte, error) {
	if schedule == nil {
		return []byte("{}"), nil
	}

	scheduleJSON, err := json.Marshal(schedule)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar dayparting_schedule para JSON: %w", err)
	}

	return scheduleJSON, nil
}

func scanCampaignWithBrand(rows *sql.Rows) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	brand := &domain.Brand{}
	var scheduleJSON []byte

	err := rows.Scan(
		&campaign.ID,
		&campaign.BrandID,
		&campaign.Name,
		&campaign.Status,
		&campaign.DailySpend,
		&campaign.MonthlySpend,
		&campaign.DaypartingEnabled,
		&scheduleJSON,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
		&brand.ID,
		&brand.Name,
		&brand.DailyBudget,
		&brand.MonthlyBudget,
		&brand.DailySpend,
		&brand.MonthlySpend,
		&brand.IsActive,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(scheduleJSON) > 0 {
		schedule := domain.DaypartingSchedule{}
		if err := json.Unmarshal(scheduleJSON, &schedule); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de dayparting_schedule: %w", err)
		}
		campaign.DaypartingSchedule = schedule
	}

	campaign.Brand = brand

	return campaign, nil
}
