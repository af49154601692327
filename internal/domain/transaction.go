package domain

import "time"

// TransactionType identifica se o lançamento é uma receita ou uma despesa.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid verifica se o tipo de lançamento é conhecido
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction representa um lançamento financeiro de uma conta.
// O valor é sempre não-negativo; o sinal é dado pelo campo Type.
type Transaction struct {
	ID              int64           `json:"id"`
	ExternalID      string          `json:"external_id"`
	AccountID       int             `json:"account_id"`
	Type            TransactionType `json:"type"`
	Amount          float64         `json:"amount"`
	Category        string          `json:"category"`
	Date            string          `json:"date"` // formato ISO YYYY-MM-DD
	Description     string          `json:"description"`
	IsTaxDeductible bool            `json:"is_tax_deductible"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Month retorna a chave ano-mês (YYYY-MM) da data do lançamento
func (t *Transaction) Month() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}

// Year retorna o ano (YYYY) da data do lançamento
func (t *Transaction) Year() string {
	if len(t.Date) < 4 {
		return t.Date
	}
	return t.Date[:4]
}

type CreateTransactionRequest struct {
	Type            TransactionType `json:"type"`
	Amount          float64         `json:"amount"`
	Category        string          `json:"category"`
	Date            string          `json:"date"`
	Description     string          `json:"description"`
	IsTaxDeductible bool            `json:"is_tax_deductible"`
}

type UpdateTransactionRequest struct {
	ID              int64    `json:"id"`
	Amount          *float64 `json:"amount"`
	Category        *string  `json:"category"`
	Date            *string  `json:"date"`
	Description     *string  `json:"description"`
	IsTaxDeductible *bool    `json:"is_tax_deductible"`
}

type BulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

type BulkCategorizeRequest struct {
	IDs      []int64 `json:"ids"`
	Category string  `json:"category"`
}
