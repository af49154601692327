package domain

import "time"

// MonthBreakdown é a linha do relatório anual para um mês (YYYY-MM):
// receita, despesa e lucro calculados de forma independente por mês.
type MonthBreakdown struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Profit  float64 `json:"profit"`
}

// AnnualReport é o demonstrativo de um ano (YYYY): resumo, categorias e a
// quebra mês a mês, todos recalculados apenas sobre os lançamentos do ano.
type AnnualReport struct {
	Year               string             `json:"year"`
	Summary            *Summary           `json:"summary"`
	IncomeByCategory   map[string]float64 `json:"income_by_category"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
	Months             []*MonthBreakdown  `json:"months"`
	TaxDeductible      float64            `json:"tax_deductible"`
}

// MonthlyReportEntry é a linha persistida pelo agendador na tabela de cache
// de relatórios mensais. Serve como trilha histórica; o relatório anual é
// sempre recalculado ao vivo.
type MonthlyReportEntry struct {
	ID        int64     `json:"id"`
	AccountID int       `json:"account_id"`
	Month     string    `json:"month"`
	Income    float64   `json:"income"`
	Expense   float64   `json:"expense"`
	Profit    float64   `json:"profit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
