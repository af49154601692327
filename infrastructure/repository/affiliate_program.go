package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/creator-finance-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-finance-api/internal/domain"
)

const affiliateProgramsTable = "affiliate_programs"

type AffiliateProgramRepository interface {
	ListByAccountID(accountID int) ([]*domain.AffiliateProgram, error)
	Create(program *domain.AffiliateProgram) (*domain.AffiliateProgram, error)
	Delete(accountID int, programID int64) error
}

type affiliateProgramRepository struct {
	conn *postgres.Connection
}

func NewAffiliateProgramRepository(conn *postgres.Connection) AffiliateProgramRepository {
	return &affiliateProgramRepository{
		conn: conn,
	}
}

func (r *affiliateProgramRepository) ListByAccountID(accountID int) ([]*domain.AffiliateProgram, error) {
	queryBuilder := squirrel.
		Select("id", "external_id", "account_id", "name", "clicks", "conversions", "commissions", "created_at", "updated_at").
		From(affiliateProgramsTable).
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at ASC", "id ASC").
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

	var programs []*domain.AffiliateProgram
	for rows.Next() {
		var program domain.AffiliateProgram
		if err := rows.Scan(
			&program.ID,
			&program.ExternalID,
			&program.AccountID,
			&program.Name,
			&program.Clicks,
			&program.Conversions,
			&program.Commissions,
			&program.CreatedAt,
			&program.UpdatedAt,
		); err != nil {
			return nil, err
		}
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

func (r *affiliateProgramRepository) Create(program *domain.AffiliateProgram) (*domain.AffiliateProgram, error) {
	queryBuilder := squirrel.
		Insert(affiliateProgramsTable).
		Columns("external_id", "account_id", "name", "clicks", "conversions", "commissions").
		Values(
			program.ExternalID,
			program.AccountID,
			program.Name,
			program.Clicks,
			program.Conversions,
			program.Commissions,
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(querySQL, queryArgs...).Scan(
		&program.ID,
		&program.CreatedAt,
		&program.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return program, nil
}

func (r *affiliateProgramRepository) Delete(accountID int, programID int64) error {
	queryBuilder := squirrel.
		Delete(affiliateProgramsTable).
		Where(squirrel.Eq{"account_id": accountID, "id": programID}).
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
