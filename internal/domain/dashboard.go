package domain

// Summary reúne os totais principais exibidos no topo do dashboard
type Summary struct {
	Revenue           float64 `json:"revenue"`
	Expenses          float64 `json:"expenses"`
	NetProfit         float64 `json:"net_profit"`
	AffiliateEarnings float64 `json:"affiliate_earnings"`
}

// MonthlyRevenue é um ponto da série de receita mensal (chave YYYY-MM)
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// DashboardResponse é o snapshot completo calculado para uma conta.
// Todos os campos derivados são produzidos pelo motor de agregação a partir
// das quatro listas; a camada de apresentação nunca os recalcula.
type DashboardResponse struct {
	Summary            *Summary            `json:"summary"`
	RevenueTrend       []*MonthlyRevenue   `json:"revenue_trend"`
	IncomeByCategory   map[string]float64  `json:"income_by_category"`
	ExpensesByCategory map[string]float64  `json:"expenses_by_category"`
	AffiliateRollup    *AffiliateRollup    `json:"affiliate_rollup"`
	ProductRollup      *ProductRollup      `json:"product_rollup"`
	GoalProgress       []*GoalProgress     `json:"goal_progress"`
	Transactions       []*Transaction      `json:"transactions"`
	AffiliatePrograms  []*AffiliateProgram `json:"affiliate_programs"`
	DigitalProducts    []*DigitalProduct   `json:"digital_products"`
	Goals              []*Goal             `json:"goals"`
}
