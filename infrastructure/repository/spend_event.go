package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

const (
	spendEventsTable = "spend_events se"
)

// SpendEventRepository é a fonte da verdade dos gastos. Eventos são
// append-only: não existem métodos de update ou delete individuais.
type SpendEventRepository interface {
	Create(event *domain.SpendEvent) error
	SumByCampaignBetween(campaignID string, from, to time.Time) (decimal.Decimal, error)
	SumByCampaignSince(campaignID string, since time.Time) (decimal.Decimal, error)
	SumByBrandBetween(brandID string, from, to time.Time) (decimal.Decimal, error)
	SumByBrandSince(brandID string, since time.Time) (decimal.Decimal, error)
	ListByCampaign(campaignID string, limit uint64) ([]*domain.SpendEvent, error)
}

type spendEventRepository struct {
	conn *postgres.Connection
}

func NewSpendEventRepository(conn *postgres.Connection) SpendEventRepository {
	return &spendEventRepository{
		conn: conn,
	}
}

func (r *spendEventRepository) Create(event *domain.SpendEvent) error {
	query, args, err := squirrel.
		Insert("spend_events").
		Columns("id", "campaign_id", "amount", "description").
		Values(
			event.ID,
			event.CampaignID,
			event.Amount,
			event.Description,
		).
		Suffix("RETURNING timestamp").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&event.Timestamp)
	if err != nil {
		return fmt.Errorf("erro ao inserir evento de gasto: %w", err)
	}

	return nil
}

// SumByCampaignBetween soma os eventos da campanha com timestamp em [from, to).
func (r *spendEventRepository) SumByCampaignBetween(campaignID string, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(squirrel.
		Select("COALESCE(SUM(se.amount), 0)").
		From(spendEventsTable).
		Where(squirrel.Eq{"se.campaign_id": campaignID}).
		Where(squirrel.GtOrEq{"se.timestamp": from}).
		Where(squirrel.Lt{"se.timestamp": to}))
}

// SumByCampaignSince soma os eventos da campanha com timestamp >= since.
func (r *spendEventRepository) SumByCampaignSince(campaignID string, since time.Time) (decimal.Decimal, error) {
	return r.sum(squirrel.
		Select("COALESCE(SUM(se.amount), 0)").
		From(spendEventsTable).
		Where(squirrel.Eq{"se.campaign_id": campaignID}).
		Where(squirrel.GtOrEq{"se.timestamp": since}))
}

// SumByBrandBetween soma os eventos de todas as campanhas da marca com
// timestamp em [from, to). A soma vem direto dos eventos, não dos caches das
// campanhas.
func (r *spendEventRepository) SumByBrandBetween(brandID string, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(squirrel.
		Select("COALESCE(SUM(se.amount), 0)").
		From(spendEventsTable).
		Join("campaigns c ON c.id = se.campaign_id").
		Where(squirrel.Eq{"c.brand_id": brandID}).
		Where(squirrel.GtOrEq{"se.timestamp": from}).
		Where(squirrel.Lt{"se.timestamp": to}))
}

// SumByBrandSince soma os eventos de todas as campanhas da marca com
// timestamp >= since.
func (r *spendEventRepository) SumByBrandSince(brandID string, since time.Time) (decimal.Decimal, error) {
	return r.sum(squirrel.
		Select("COALESCE(SUM(se.amount), 0)").
		From(spendEventsTable).
		Join("campaigns c ON c.id = se.campaign_id").
		Where(squirrel.Eq{"c.brand_id": brandID}).
		Where(squirrel.GtOrEq{"se.timestamp": since}))
}

func (r *spendEventRepository) sum(builder squirrel.SelectBuilder) (decimal.Decimal, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total decimal.Decimal
	err = r.conn.QueryRow(query, args...).Scan(&total)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("erro ao somar eventos de gasto: %w", err)
	}

	return total, nil
}

func (r *spendEventRepository) ListByCampaign(campaignID string, limit uint64) ([]*domain.SpendEvent, error) {
	builder := squirrel.
		Select("se.id, se.campaign_id, se.amount, se.timestamp, se.description").
		From(spendEventsTable).
		Where(squirrel.Eq{"se.campaign_id": campaignID}).
		OrderBy("se.timestamp DESC")

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.SpendEvent, 0)
	for rows.Next() {
		event := &domain.SpendEvent{}
		err := rows.Scan(
			&event.ID,
			&event.CampaignID,
			&event.Amount,
			&event.Timestamp,
			&event.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear evento de gasto: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return events, nil
}
