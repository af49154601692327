package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/creator-finance-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-finance-api/internal/domain"
)

const transactionsTable = "transactions"

type TransactionRepository interface {
	ListByAccountID(accountID int) ([]*domain.Transaction, error)
	GetByID(accountID int, transactionID int64) (*domain.Transaction, error)
	Create(transaction *domain.Transaction) (*domain.Transaction, error)
	Update(transaction *domain.Transaction) error
	Delete(accountID int, transactionID int64) error
	BulkDelete(accountID int, transactionIDs []int64) (int64, error)
	BulkCategorize(accountID int, transactionIDs []int64, category string) (int64, error)
}

type transactionRepository struct {
	conn *postgres.Connection
}

func NewTransactionRepository(conn *postgres.Connection) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

var transactionColumns = []string{
	"id",
	"external_id",
	"account_id",
	"type",
	"amount",
	"category",
	"date",
	"description",
	"is_tax_deductible",
	"created_at",
	"updated_at",
}

func (r *transactionRepository) ListByAccountID(accountID int) ([]*domain.Transaction, error) {
	queryBuilder := squirrel.
		Select(transactionColumns...).
		From(transactionsTable).
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("date DESC", "id DESC").
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

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *transactionRepository) GetByID(accountID int, transactionID int64) (*domain.Transaction, error) {
	queryBuilder := squirrel.
		Select(transactionColumns...).
		From(transactionsTable).
		Where(squirrel.Eq{"account_id": accountID, "id": transactionID}).
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var transaction domain.Transaction
	err = r.conn.QueryRow(querySQL, queryArgs...).Scan(
		&transaction.ID,
		&transaction.ExternalID,
		&transaction.AccountID,
		&transaction.Type,
		&transaction.Amount,
		&transaction.Category,
		&transaction.Date,
		&transaction.Description,
		&transaction.IsTaxDeductible,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

func (r *transactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	queryBuilder := squirrel.
		Insert(transactionsTable).
		Columns("external_id", "account_id", "type", "amount", "category", "date", "description", "is_tax_deductible").
		Values(
			transaction.ExternalID,
			transaction.AccountID,
			transaction.Type,
			transaction.Amount,
			transaction.Category,
			transaction.Date,
			transaction.Description,
			transaction.IsTaxDeductible,
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(querySQL, queryArgs...).Scan(
		&transaction.ID,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

func (r *transactionRepository) Update(transaction *domain.Transaction) error {
	queryBuilder := squirrel.
		Update(transactionsTable).
		Set("amount", transaction.Amount).
		Set("category", transaction.Category).
		Set("date", transaction.Date).
		Set("description", transaction.Description).
		Set("is_tax_deductible", transaction.IsTaxDeductible).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"account_id": transaction.AccountID, "id": transaction.ID}).
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

func (r *transactionRepository) Delete(accountID int, transactionID int64) error {
	queryBuilder := squirrel.
		Delete(transactionsTable).
		Where(squirrel.Eq{"account_id": accountID, "id": transactionID}).
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

// BulkDelete remove os lançamentos informados que pertencem à conta.
// IDs de outras contas são ignorados silenciosamente.
func (r *transactionRepository) BulkDelete(accountID int, transactionIDs []int64) (int64, error) {
	if len(transactionIDs) == 0 {
		return 0, nil
	}

	queryBuilder := squirrel.
		Delete(transactionsTable).
		Where(squirrel.Eq{"account_id": accountID, "id": transactionIDs}).
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	result, err := r.conn.Exec(querySQL, queryArgs...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover lançamentos: %w", err)
	}

	return result.RowsAffected()
}

// BulkCategorize aplica a categoria aos lançamentos informados da conta
func (r *transactionRepository) BulkCategorize(accountID int, transactionIDs []int64, category string) (int64, error) {
	if len(transactionIDs) == 0 {
		return 0, nil
	}

	queryBuilder := squirrel.
		Update(transactionsTable).
		Set("category", category).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"account_id": accountID, "id": transactionIDs}).
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	result, err := r.conn.Exec(querySQL, queryArgs...)
	if err != nil {
		return 0, fmt.Errorf("erro ao categorizar lançamentos: %w", err)
	}

	return result.RowsAffected()
}

func scanTransaction(rows *sql.Rows) (*domain.Transaction, error) {
	var transaction domain.Transaction
	if err := rows.Scan(
		&transaction.ID,
		&transaction.ExternalID,
		&transaction.AccountID,
		&transaction.Type,
		&transaction.Amount,
		&transaction.Category,
		&transaction.Date,
		&transaction.Description,
		&transaction.IsTaxDeductible,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &transaction, nil
}
