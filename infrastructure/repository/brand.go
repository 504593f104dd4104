package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

const (
	brandsTable   = "brands"
	brandsColumns = "id, name, daily_budget, monthly_budget, daily_spend, monthly_spend, is_active, created_at, updated_at"
)

type BrandRepository interface {
	Create(brand *domain.Brand) error
	GetByID(id string) (*domain.Brand, error)
	List() ([]*domain.Brand, error)
	ListActive() ([]*domain.Brand, error)
	Count() (int, error)
	Update(brand *domain.Brand) error
	UpdateSpends(id string, dailySpend, monthlySpend decimal.Decimal) error
	ResetDailySpends() (int64, error)
	ResetMonthlySpends() (int64, error)
	Delete(id string) error
}

type brandRepository struct {
	conn *postgres.Connection
}

func NewBrandRepository(conn *postgres.Connection) BrandRepository {
	return &brandRepository{
		conn: conn,
	}
}

func (r *brandRepository) Create(brand *domain.Brand) error {
	query, args, err := squirrel.
		Insert(brandsTable).
		Columns("id", "name", "daily_budget", "monthly_budget", "daily_spend", "monthly_spend", "is_active").
		Values(
			brand.ID,
			brand.Name,
			brand.DailyBudget,
			brand.MonthlyBudget,
			brand.DailySpend,
			brand.MonthlySpend,
			brand.IsActive,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("erro ao inserir marca: %w", err)
	}

	return nil
}

func (r *brandRepository) GetByID(id string) (*domain.Brand, error) {
	query, args, err := squirrel.
		Select(brandsColumns).
		From(brandsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	brand, err := scanBrand(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear marca: %w", err)
	}

	return brand, nil
}

func (r *brandRepository) List() ([]*domain.Brand, error) {
	return r.list(squirrel.
		Select(brandsColumns).
		From(brandsTable).
		OrderBy("name ASC"))
}

func (r *brandRepository) ListActive() ([]*domain.Brand, error) {
	return r.list(squirrel.
		Select(brandsColumns).
		From(brandsTable).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC"))
}

func (r *brandRepository) list(builder squirrel.SelectBuilder) ([]*domain.Brand, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	brands := make([]*domain.Brand, 0)
	for rows.Next() {
		brand := &domain.Brand{}
		err := rows.Scan(
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
			return nil, fmt.Errorf("erro ao escanear marca: %w", err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return brands, nil
}

func (r *brandRepository) Count() (int, error) {
	var count int
	err := r.conn.QueryRow("SELECT COUNT(*) FROM brands").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar marcas: %w", err)
	}
	return count, nil
}

func (r *brandRepository) Update(brand *domain.Brand) error {
	query, args, err := squirrel.
		Update(brandsTable).
		Set("name", brand.Name).
		Set("daily_budget", brand.DailyBudget).
		Set("monthly_budget", brand.MonthlyBudget).
		Set("is_active", brand.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": brand.ID}).
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
		return fmt.Errorf("erro ao atualizar marca: %w", err)
	}

	return nil
}

// UpdateSpends persiste os caches de gasto recalculados junto com updated_at.
func (r *brandRepository) UpdateSpends(id string, dailySpend, monthlySpend decimal.Decimal) error {
	query, args, err := squirrel.
		Update(brandsTable).
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
		return fmt.Errorf("erro ao atualizar gastos da marca: %w", err)
	}

	return nil
}

// ResetDailySpends zera o cache diário de todas as marcas em uma única query.
// O histórico de eventos não é tocado.
func (r *brandRepository) ResetDailySpends() (int64, error) {
	return r.resetSpends("daily_spend")
}

// ResetMonthlySpends zera o cache mensal de todas as marcas em uma única query.
func (r *brandRepository) ResetMonthlySpends() (int64, error) {
	return r.resetSpends("monthly_spend")
}

func (r *brandRepository) resetSpends(column string) (int64, error) {
	query := fmt.Sprintf("UPDATE brands SET %s = 0, updated_at = NOW()", column)

	result, err := r.conn.Exec(query)
	if err != nil {
		return 0, fmt.Errorf("erro ao zerar gastos das marcas: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *brandRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete(brandsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	// Campanhas e eventos de gasto são removidos em cascata pelo banco
	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover marca: %w", err)
	}

	return nil
}

func scanBrand(row *sql.Row) (*domain.Brand, error) {
	brand := &domain.Brand{}

	err := row.Scan(
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

	return brand, nil
}
