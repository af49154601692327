package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/creator-finance-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-finance-api/internal/domain"
)

const goalsTable = "goals"

type GoalRepository interface {
	ListByAccountID(accountID int) ([]*domain.Goal, error)
	ListAll() ([]*domain.Goal, error)
	Create(goal *domain.Goal) (*domain.Goal, error)
	Delete(accountID int, goalID int64) error
	UpdateCurrentAmount(goalID int64, currentAmount float64) error
}

type goalRepository struct {
	conn *postgres.Connection
}

func NewGoalRepository(conn *postgres.Connection) GoalRepository {
	return &goalRepository{
		conn: conn,
	}
}

func (r *goalRepository) ListByAccountID(accountID int) ([]*domain.Goal, error) {
	queryBuilder := squirrel.
		Select("id", "external_id", "account_id", "type", "target_amount", "month", "current_amount", "created_at", "updated_at").
		From(goalsTable).
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("month ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryGoals(querySQL, queryArgs...)
}

// ListAll retorna as metas de todas as contas. Usado apenas pelo job de
// sincronização que atualiza o cache de progresso.
func (r *goalRepository) ListAll() ([]*domain.Goal, error) {
	queryBuilder := squirrel.
		Select("id", "external_id", "account_id", "type", "target_amount", "month", "current_amount", "created_at", "updated_at").
		From(goalsTable).
		OrderBy("account_id ASC", "month ASC").
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryGoals(querySQL, queryArgs...)
}

func (r *goalRepository) queryGoals(querySQL string, queryArgs ...interface{}) ([]*domain.Goal, error) {
	rows, err := r.conn.Query(querySQL, queryArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		var goal domain.Goal
		if err := rows.Scan(
			&goal.ID,
			&goal.ExternalID,
			&goal.AccountID,
			&goal.Type,
			&goal.TargetAmount,
			&goal.Month,
			&goal.CurrentAmount,
			&goal.CreatedAt,
			&goal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, &goal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	queryBuilder := squirrel.
		Insert(goalsTable).
		Columns("external_id", "account_id", "type", "target_amount", "month", "current_amount").
		Values(
			goal.ExternalID,
			goal.AccountID,
			goal.Type,
			goal.TargetAmount,
			goal.Month,
			goal.CurrentAmount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(querySQL, queryArgs...).Scan(
		&goal.ID,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) Delete(accountID int, goalID int64) error {
	queryBuilder := squirrel.
		Delete(goalsTable).
		Where(squirrel.Eq{"account_id": accountID, "id": goalID}).
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.Exec(querySQL, queryArgs...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// UpdateCurrentAmount grava o cache de progresso calculado pelo agendador
func (r *goalRepository) UpdateCurrentAmount(goalID int64, currentAmount float64) error {
	queryBuilder := squirrel.
		Update(goalsTable).
		Set("current_amount", currentAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": goalID}).
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	_, err = r.conn.Exec(querySQL, queryArgs...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar progresso da meta: %w", err)
	}

	return nil
}
