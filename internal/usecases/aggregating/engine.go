// Package aggregating contém o motor de agregação e previsão financeira.
//
// Todas as funções são puras e síncronas: recebem um snapshot das listas de
// uma conta e devolvem os números derivados exibidos no dashboard. Nenhuma
// função faz I/O, valida entrada ou altera os registros recebidos — listas
// vazias sempre produzem somas zero e mapas vazios, nunca erro.
package aggregating

import (
	"errors"
	"sort"

	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/pkg/utils"
)

// ErrInsufficientHistory indica que a conta não tem os três meses distintos
// de receita exigidos pela previsão. É um resultado esperado, não uma falha:
// o chamador deve exibir o estado "sem histórico suficiente" em vez de um
// número fabricado.
var ErrInsufficientHistory = errors.New("histórico insuficiente para previsão: são necessários pelo menos 3 meses de receita")

// minForecastMonths é a precondição da previsão de receita
const minForecastMonths = 3

// Summarize calcula os totais do resumo: receita, despesa, lucro líquido e
// comissões de afiliados. Vale sempre NetProfit == Revenue - Expenses.
func Summarize(transactions []*domain.Transaction, programs []*domain.AffiliateProgram) *domain.Summary {
	summary := &domain.Summary{}

	for _, t := range transactions {
		switch t.Type {
		case domain.TransactionTypeIncome:
			summary.Revenue += t.Amount
		case domain.TransactionTypeExpense:
			summary.Expenses += t.Amount
		}
	}

	for _, p := range programs {
		summary.AffiliateEarnings += p.Commissions
	}

	summary.NetProfit = summary.Revenue - summary.Expenses
	return summary
}

// IncomeByMonth agrupa a receita pela chave ano-mês (YYYY-MM) da data.
// Meses sem lançamentos de receita não aparecem no mapa.
func IncomeByMonth(transactions []*domain.Transaction) map[string]float64 {
	byMonth := make(map[string]float64)
	for _, t := range transactions {
		if t.Type != domain.TransactionTypeIncome {
			continue
		}
		byMonth[t.Month()] += t.Amount
	}
	return byMonth
}

// MonthTotals soma receitas e despesas de um único mês (YYYY-MM)
func MonthTotals(transactions []*domain.Transaction, month string) (income, expense float64) {
	for _, t := range transactions {
		if t.Month() != month {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeIncome:
			income += t.Amount
		case domain.TransactionTypeExpense:
			expense += t.Amount
		}
	}
	return income, expense
}

// MonthlyRevenueTrend produz a série mensal de receita ordenada de forma
// crescente pela chave YYYY-MM (ordem lexicográfica = cronológica).
func MonthlyRevenueTrend(transactions []*domain.Transaction) []*domain.MonthlyRevenue {
	byMonth := IncomeByMonth(transactions)

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	trend := make([]*domain.MonthlyRevenue, 0, len(months))
	for _, month := range months {
		trend = append(trend, &domain.MonthlyRevenue{
			Month:   month,
			Revenue: byMonth[month],
		})
	}
	return trend
}

// CategoryBreakdown agrupa os lançamentos do tipo informado por categoria.
// A ordem de iteração do mapa não é significativa; ordenação para exibição é
// responsabilidade da camada de apresentação.
func CategoryBreakdown(transactions []*domain.Transaction, txType domain.TransactionType) map[string]float64 {
	byCategory := make(map[string]float64)
	for _, t := range transactions {
		if t.Type != txType {
			continue
		}
		byCategory[t.Category] += t.Amount
	}
	return byCategory
}

// AffiliateRollup agrega cliques, conversões e comissões de todos os
// programas. As taxas usam guarda explícita de divisão por zero: com zero
// cliques a taxa média e o EPC são 0.00 por definição, nunca NaN.
func AffiliateRollup(programs []*domain.AffiliateProgram) *domain.AffiliateRollup {
	rollup := &domain.AffiliateRollup{
		Programs: make([]*domain.ProgramPerformance, 0, len(programs)),
	}

	for _, p := range programs {
		rollup.TotalClicks += p.Clicks
		rollup.TotalConversions += p.Conversions
		rollup.TotalCommissions += p.Commissions

		rollup.Programs = append(rollup.Programs, &domain.ProgramPerformance{
			Program:        p,
			ConversionRate: conversionRate(p.Conversions, p.Clicks),
		})
	}

	if rollup.TotalClicks > 0 {
		rollup.AvgConversionRate = utils.RoundWithTwoDecimalPlace(
			float64(rollup.TotalConversions) / float64(rollup.TotalClicks) * 100,
		)
		rollup.EPC = utils.RoundWithTwoDecimalPlace(
			rollup.TotalCommissions / float64(rollup.TotalClicks),
		)
	}

	return rollup
}

// conversionRate aplica a mesma guarda de zero por programa
func conversionRate(conversions, clicks int) float64 {
	if clicks <= 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(float64(conversions) / float64(clicks) * 100)
}

// ProductRollup agrega vendas, receita bruta e taxas de todos os produtos e
// monta o ranking por vendas decrescentes. O ranking usa ordenação estável:
// produtos com o mesmo número de vendas mantêm a ordem relativa original.
func ProductRollup(products []*domain.DigitalProduct) *domain.ProductRollup {
	rollup := &domain.ProductRollup{
		Ranking: make([]*domain.DigitalProduct, len(products)),
	}

	for _, p := range products {
		rollup.TotalSales += p.Sales
		rollup.TotalGross += p.GrossRevenue
		rollup.TotalFees += p.PlatformFee
	}
	rollup.TotalNet = rollup.TotalGross - rollup.TotalFees

	copy(rollup.Ranking, products)
	sort.SliceStable(rollup.Ranking, func(i, j int) bool {
		return rollup.Ranking[i].Sales > rollup.Ranking[j].Sales
	})

	return rollup
}

// GoalProgress calcula o progresso de uma meta a partir dos lançamentos do
// mês da meta. O valor corrente é sempre recalculado ao vivo — o campo
// CurrentAmount armazenado nunca é lido aqui.
//
// Meta de receita: soma das receitas do mês. Meta de lucro: receitas menos
// despesas do mês. O progresso é limitado a 100%. Uma meta com alvo zero usa
// alvo 1 na divisão; o comportamento observado no produto é preservado de
// propósito, pendente de esclarecimento com o time de produto.
func GoalProgress(goal *domain.Goal, transactions []*domain.Transaction) *domain.GoalProgress {
	var income, expense float64

	for _, t := range transactions {
		if t.Month() != goal.Month {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeIncome:
			income += t.Amount
		case domain.TransactionTypeExpense:
			expense += t.Amount
		}
	}

	current := income
	if goal.Type == domain.GoalTypeProfit {
		current = income - expense
	}

	target := goal.TargetAmount
	if target == 0 {
		target = 1
	}

	progress := current / target * 100
	if progress > 100 {
		progress = 100
	}

	return &domain.GoalProgress{
		Goal:          goal,
		CurrentAmount: current,
		Progress:      progress,
		Completed:     progress >= 100,
	}
}

// GoalProgressAll calcula o progresso de todas as metas, de forma
// independente, a partir do mesmo snapshot de lançamentos
func GoalProgressAll(goals []*domain.Goal, transactions []*domain.Transaction) []*domain.GoalProgress {
	progress := make([]*domain.GoalProgress, 0, len(goals))
	for _, goal := range goals {
		progress = append(progress, GoalProgress(goal, transactions))
	}
	return progress
}

// IncomeForecast projeta a receita do próximo mês por extrapolação linear
// dos três últimos meses com receita (do histórico ordenado):
//
//	trend    = (a₂ - a₀) / 2      (variação média mensal no intervalo)
//	forecast = a₂ + trend         (limitada ao mínimo de 0)
//	growth%  = trend / a₂ × 100   (0 quando a₂ = 0)
//
// A fórmula reproduz exatamente o comportamento do produto: é uma
// extrapolação de dois pontos, não uma regressão estatística. Com menos de
// três meses distintos de receita devolve ErrInsufficientHistory.
func IncomeForecast(transactions []*domain.Transaction) (*domain.Forecast, error) {
	byMonth := IncomeByMonth(transactions)
	if len(byMonth) < minForecastMonths {
		return nil, ErrInsufficientHistory
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	basis := months[len(months)-minForecastMonths:]
	oldest := byMonth[basis[0]]
	latest := byMonth[basis[2]]

	trend := (latest - oldest) / 2

	forecast := latest + trend
	if forecast < 0 {
		forecast = 0
	}

	growth := 0.0
	if latest > 0 {
		growth = trend / latest * 100
	}

	return &domain.Forecast{
		BasisMonths:      basis,
		Trend:            trend,
		NextMonthRevenue: forecast,
		GrowthPercent:    growth,
	}, nil
}

// AnnualReport filtra os lançamentos do ano informado (YYYY) e recalcula o
// resumo, as categorias e a quebra mês a mês apenas sobre esse recorte.
// Inclui também o total dedutível do ano, exibido na aba de despesas.
func AnnualReport(transactions []*domain.Transaction, year string) *domain.AnnualReport {
	filtered := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Year() == year {
			filtered = append(filtered, t)
		}
	}

	report := &domain.AnnualReport{
		Year:               year,
		Summary:            Summarize(filtered, nil),
		IncomeByCategory:   CategoryBreakdown(filtered, domain.TransactionTypeIncome),
		ExpensesByCategory: CategoryBreakdown(filtered, domain.TransactionTypeExpense),
		Months:             monthBreakdown(filtered),
	}

	for _, t := range filtered {
		if t.Type == domain.TransactionTypeExpense && t.IsTaxDeductible {
			report.TaxDeductible += t.Amount
		}
	}

	return report
}

// monthBreakdown agrupa os lançamentos já filtrados por mês, calculando
// receita, despesa e lucro de cada mês de forma independente
func monthBreakdown(transactions []*domain.Transaction) []*domain.MonthBreakdown {
	byMonth := make(map[string]*domain.MonthBreakdown)
	for _, t := range transactions {
		month := t.Month()
		row, ok := byMonth[month]
		if !ok {
			row = &domain.MonthBreakdown{Month: month}
			byMonth[month] = row
		}

		switch t.Type {
		case domain.TransactionTypeIncome:
			row.Income += t.Amount
		case domain.TransactionTypeExpense:
			row.Expense += t.Amount
		}
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	rows := make([]*domain.MonthBreakdown, 0, len(months))
	for _, month := range months {
		row := byMonth[month]
		row.Profit = row.Income - row.Expense
		rows = append(rows, row)
	}
	return rows
}
