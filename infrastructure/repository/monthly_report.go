package repository

import (
	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/creator-finance-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-finance-api/internal/domain"
)

const monthlyReportsTable = "monthly_reports"

type MonthlyReportRepository interface {
	SaveOrUpdate(entry *domain.MonthlyReportEntry) error
	ListByAccountIDAndYear(accountID int, year string) ([]*domain.MonthlyReportEntry, error)
}

type monthlyReportRepository struct {
	conn *postgres.Connection
}

func NewMonthlyReportRepository(conn *postgres.Connection) MonthlyReportRepository {
	return &monthlyReportRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere ou atualiza a linha do mês para a conta.
// A trilha histórica é idempotente por (account_id, month).
func (r *monthlyReportRepository) SaveOrUpdate(entry *domain.MonthlyReportEntry) error {
	queryBuilder := squirrel.
		Insert(monthlyReportsTable).
		Columns("account_id", "month", "income", "expense", "profit").
		Values(entry.AccountID, entry.Month, entry.Income, entry.Expense, entry.Profit).
		Suffix(`
			ON CONFLICT (account_id, month) DO UPDATE SET
				income = EXCLUDED.income,
				expense = EXCLUDED.expense,
				profit = EXCLUDED.profit,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(querySQL, queryArgs...)
	return err
}

func (r *monthlyReportRepository) ListByAccountIDAndYear(accountID int, year string) ([]*domain.MonthlyReportEntry, error) {
	queryBuilder := squirrel.
		Select("id", "account_id", "month", "income", "expense", "profit", "created_at", "updated_at").
		From(monthlyReportsTable).
		Where(squirrel.Eq{"account_id": accountID}).
		Where(squirrel.Like{"month": year + "-%"}).
		OrderBy("month ASC").
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(querySQL, queryArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.MonthlyReportEntry
	for rows.Next() {
		var entry domain.MonthlyReportEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.Month,
			&entry.Income,
			&entry.Expense,
			&entry.Profit,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
