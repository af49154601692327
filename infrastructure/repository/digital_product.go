package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/creator-finance-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-finance-api/internal/domain"
)

const digitalProductsTable = "digital_products"

type DigitalProductRepository interface {
	ListByAccountID(accountID int) ([]*domain.DigitalProduct, error)
	Create(product *domain.DigitalProduct) (*domain.DigitalProduct, error)
	Delete(accountID int, productID int64) error
}

type digitalProductRepository struct {
	conn *postgres.Connection
}

func NewDigitalProductRepository(conn *postgres.Connection) DigitalProductRepository {
	return &digitalProductRepository{
		conn: conn,
	}
}

func (r *digitalProductRepository) ListByAccountID(accountID int) ([]*domain.DigitalProduct, error) {
	queryBuilder := squirrel.
		Select("id", "external_id", "account_id", "name", "sales", "gross_revenue", "platform_fee", "created_at", "updated_at").
		From(digitalProductsTable).
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

	var products []*domain.DigitalProduct
	for rows.Next() {
		var product domain.DigitalProduct
		if err := rows.Scan(
			&product.ID,
			&product.ExternalID,
			&product.AccountID,
			&product.Name,
			&product.Sales,
			&product.GrossRevenue,
			&product.PlatformFee,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *digitalProductRepository) Create(product *domain.DigitalProduct) (*domain.DigitalProduct, error) {
	queryBuilder := squirrel.
		Insert(digitalProductsTable).
		Columns("external_id", "account_id", "name", "sales", "gross_revenue", "platform_fee").
		Values(
			product.ExternalID,
			product.AccountID,
			product.Name,
			product.Sales,
			product.GrossRevenue,
			product.PlatformFee,
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(querySQL, queryArgs...).Scan(
		&product.ID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *digitalProductRepository) Delete(accountID int, productID int64) error {
	queryBuilder := squirrel.
		Delete(digitalProductsTable).
		Where(squirrel.Eq{"account_id": accountID, "id": productID}).
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
