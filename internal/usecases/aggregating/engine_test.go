package aggregating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creator-finance-api/internal/domain"
)

func income(month string, amount float64, category string) *domain.Transaction {
	return &domain.Transaction{
		Type:     domain.TransactionTypeIncome,
		Amount:   amount,
		Category: category,
		Date:     month + "-15",
	}
}

func expense(month string, amount float64, category string) *domain.Transaction {
	return &domain.Transaction{
		Type:     domain.TransactionTypeExpense,
		Amount:   amount,
		Category: category,
		Date:     month + "-20",
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		txs      []*domain.Transaction
		programs []*domain.AffiliateProgram
		expected domain.Summary
	}{
		{
			name: "Receitas e despesas misturadas - lucro é exatamente receita menos despesa",
			txs: []*domain.Transaction{
				income("2024-01", 1200.50, "Freelance"),
				income("2024-02", 800, "Affiliate"),
				expense("2024-01", 300.25, "Software"),
				expense("2024-02", 99.99, "Marketing"),
			},
			programs: []*domain.AffiliateProgram{
				{Name: "Amazon", Commissions: 150.75},
				{Name: "Hotmart", Commissions: 49.25},
			},
			expected: domain.Summary{
				Revenue:           2000.50,
				Expenses:          400.24,
				NetProfit:         1600.26,
				AffiliateEarnings: 200.00,
			},
		},
		{
			name:     "Listas vazias - todos os totais zerados sem erro",
			txs:      nil,
			programs: nil,
			expected: domain.Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summarize(tt.txs, tt.programs)

			assert.InDelta(t, tt.expected.Revenue, summary.Revenue, 1e-9)
			assert.InDelta(t, tt.expected.Expenses, summary.Expenses, 1e-9)
			assert.InDelta(t, tt.expected.AffiliateEarnings, summary.AffiliateEarnings, 1e-9)

			// Invariante: lucro líquido é sempre receita menos despesa
			assert.Equal(t, summary.Revenue-summary.Expenses, summary.NetProfit)
		})
	}
}

func TestMonthlyRevenueTrend(t *testing.T) {
	txs := []*domain.Transaction{
		income("2024-03", 500, "Courses"),
		income("2024-01", 1000, "Freelance"),
		expense("2024-02", 999, "Software"), // despesa não entra na série
		income("2024-01", 250, "Affiliate"),
		income("2023-12", 700, "Courses"),
	}

	trend := MonthlyRevenueTrend(txs)

	// Ordenação crescente por mês e omissão de meses sem receita (2024-02)
	require.Len(t, trend, 3)
	assert.Equal(t, "2023-12", trend[0].Month)
	assert.Equal(t, 700.0, trend[0].Revenue)
	assert.Equal(t, "2024-01", trend[1].Month)
	assert.Equal(t, 1250.0, trend[1].Revenue)
	assert.Equal(t, "2024-03", trend[2].Month)
	assert.Equal(t, 500.0, trend[2].Revenue)
}

func TestMonthlyRevenueTrend_SemLancamentos(t *testing.T) {
	assert.Empty(t, MonthlyRevenueTrend(nil))
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []*domain.Transaction{
		income("2024-01", 100, "Freelance"),
		income("2024-02", 200, "Freelance"),
		income("2024-02", 50, "Courses"),
		expense("2024-01", 30, "Software"),
	}

	byCategory := CategoryBreakdown(txs, domain.TransactionTypeIncome)

	assert.Len(t, byCategory, 2)
	assert.Equal(t, 300.0, byCategory["Freelance"])
	assert.Equal(t, 50.0, byCategory["Courses"])

	expenses := CategoryBreakdown(txs, domain.TransactionTypeExpense)
	assert.Len(t, expenses, 1)
	assert.Equal(t, 30.0, expenses["Software"])
}

func TestAffiliateRollup(t *testing.T) {
	tests := []struct {
		name     string
		programs []*domain.AffiliateProgram
		validate func(t *testing.T, rollup *domain.AffiliateRollup)
	}{
		{
			name: "Programas com cliques - taxas calculadas com duas casas",
			programs: []*domain.AffiliateProgram{
				{Name: "Amazon", Clicks: 1000, Conversions: 50, Commissions: 500},
				{Name: "Hotmart", Clicks: 500, Conversions: 10, Commissions: 250},
			},
			validate: func(t *testing.T, rollup *domain.AffiliateRollup) {
				assert.Equal(t, 1500, rollup.TotalClicks)
				assert.Equal(t, 60, rollup.TotalConversions)
				assert.Equal(t, 750.0, rollup.TotalCommissions)
				assert.Equal(t, 4.0, rollup.AvgConversionRate)
				assert.Equal(t, 0.5, rollup.EPC)

				require.Len(t, rollup.Programs, 2)
				assert.Equal(t, 5.0, rollup.Programs[0].ConversionRate)
				assert.Equal(t, 2.0, rollup.Programs[1].ConversionRate)
			},
		},
		{
			name: "Zero cliques - taxas e EPC são 0.00 por definição, nunca NaN",
			programs: []*domain.AffiliateProgram{
				{Name: "Novo", Clicks: 0, Conversions: 0, Commissions: 0},
			},
			validate: func(t *testing.T, rollup *domain.AffiliateRollup) {
				assert.Equal(t, 0.0, rollup.AvgConversionRate)
				assert.Equal(t, 0.0, rollup.EPC)
				assert.False(t, rollup.AvgConversionRate != rollup.AvgConversionRate, "não pode ser NaN")
				require.Len(t, rollup.Programs, 1)
				assert.Equal(t, 0.0, rollup.Programs[0].ConversionRate)
			},
		},
		{
			name:     "Sem programas - totais zerados",
			programs: nil,
			validate: func(t *testing.T, rollup *domain.AffiliateRollup) {
				assert.Equal(t, 0, rollup.TotalClicks)
				assert.Equal(t, 0.0, rollup.AvgConversionRate)
				assert.Equal(t, 0.0, rollup.EPC)
				assert.Empty(t, rollup.Programs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, AffiliateRollup(tt.programs))
		})
	}
}

func TestProductRollup(t *testing.T) {
	products := []*domain.DigitalProduct{
		{ID: 1, Name: "Ebook", Sales: 100, GrossRevenue: 2000, PlatformFee: 200},
		{ID: 2, Name: "Curso", Sales: 300, GrossRevenue: 9000, PlatformFee: 900},
		{ID: 3, Name: "Template", Sales: 100, GrossRevenue: 500, PlatformFee: 50},
	}

	rollup := ProductRollup(products)

	assert.Equal(t, 500, rollup.TotalSales)
	assert.Equal(t, 11500.0, rollup.TotalGross)
	assert.Equal(t, 1150.0, rollup.TotalFees)
	assert.Equal(t, 10350.0, rollup.TotalNet)

	// Ranking por vendas decrescentes; empate (Ebook e Template com 100)
	// mantém a ordem relativa original - ordenação estável
	require.Len(t, rollup.Ranking, 3)
	assert.Equal(t, int64(2), rollup.Ranking[0].ID)
	assert.Equal(t, int64(1), rollup.Ranking[1].ID)
	assert.Equal(t, int64(3), rollup.Ranking[2].ID)

	// A lista original não é reordenada
	assert.Equal(t, int64(1), products[0].ID)
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name     string
		goal     *domain.Goal
		txs      []*domain.Transaction
		expected domain.GoalProgress
	}{
		{
			name: "Meta de lucro - receitas menos despesas do mês da meta",
			goal: &domain.Goal{Type: domain.GoalTypeProfit, TargetAmount: 1000, Month: "2024-03"},
			txs: []*domain.Transaction{
				income("2024-03", 600, "Freelance"),
				income("2024-03", 500, "Courses"),
				expense("2024-03", 300, "Software"),
				income("2024-04", 9999, "Freelance"), // fora do mês da meta
			},
			expected: domain.GoalProgress{CurrentAmount: 800, Progress: 80.0, Completed: false},
		},
		{
			name: "Meta de receita atingida - progresso limitado a 100",
			goal: &domain.Goal{Type: domain.GoalTypeIncome, TargetAmount: 500, Month: "2024-01"},
			txs: []*domain.Transaction{
				income("2024-01", 800, "Freelance"),
				expense("2024-01", 700, "Software"), // despesa não afeta meta de receita
			},
			expected: domain.GoalProgress{CurrentAmount: 800, Progress: 100.0, Completed: true},
		},
		{
			name:     "Mês sem lançamentos - valor corrente zero",
			goal:     &domain.Goal{Type: domain.GoalTypeIncome, TargetAmount: 500, Month: "2030-01"},
			txs:      []*domain.Transaction{income("2024-01", 800, "Freelance")},
			expected: domain.GoalProgress{CurrentAmount: 0, Progress: 0, Completed: false},
		},
		{
			name:     "Alvo zero - divisor vira 1 para evitar divisão por zero",
			goal:     &domain.Goal{Type: domain.GoalTypeIncome, TargetAmount: 0, Month: "2024-01"},
			txs:      []*domain.Transaction{income("2024-01", 0.5, "Freelance")},
			expected: domain.GoalProgress{CurrentAmount: 0.5, Progress: 50.0, Completed: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := GoalProgress(tt.goal, tt.txs)

			assert.InDelta(t, tt.expected.CurrentAmount, progress.CurrentAmount, 1e-9)
			assert.InDelta(t, tt.expected.Progress, progress.Progress, 1e-9)
			assert.Equal(t, tt.expected.Completed, progress.Completed)
			assert.Same(t, tt.goal, progress.Goal)
		})
	}
}

func TestIncomeForecast(t *testing.T) {
	t.Run("Menos de 3 meses de histórico - ErrInsufficientHistory, nunca número", func(t *testing.T) {
		txs := []*domain.Transaction{
			income("2024-01", 1000, "Freelance"),
			income("2024-02", 1200, "Freelance"),
		}

		forecast, err := IncomeForecast(txs)
		assert.Nil(t, forecast)
		assert.ErrorIs(t, err, ErrInsufficientHistory)
	})

	t.Run("Três meses crescentes - extrapolação linear exata", func(t *testing.T) {
		txs := []*domain.Transaction{
			income("2024-01", 1000, "Freelance"),
			income("2024-02", 1200, "Freelance"),
			income("2024-03", 1400, "Freelance"),
		}

		forecast, err := IncomeForecast(txs)
		require.NoError(t, err)

		assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, forecast.BasisMonths)
		assert.Equal(t, 200.0, forecast.Trend)
		assert.Equal(t, 1600.0, forecast.NextMonthRevenue)
		assert.InDelta(t, 14.29, forecast.GrowthPercent, 0.01)
	})

	t.Run("Queda acentuada - projeção limitada ao mínimo de zero", func(t *testing.T) {
		txs := []*domain.Transaction{
			income("2024-01", 1000, "Freelance"),
			income("2024-02", 500, "Freelance"),
			income("2024-03", 100, "Freelance"),
		}

		forecast, err := IncomeForecast(txs)
		require.NoError(t, err)

		assert.Equal(t, -450.0, forecast.Trend)
		assert.Equal(t, 0.0, forecast.NextMonthRevenue)
	})

	t.Run("Mais de 3 meses - usa apenas os três últimos", func(t *testing.T) {
		txs := []*domain.Transaction{
			income("2023-10", 99999, "Freelance"),
			income("2024-01", 1000, "Freelance"),
			income("2024-02", 1200, "Freelance"),
			income("2024-03", 1400, "Freelance"),
		}

		forecast, err := IncomeForecast(txs)
		require.NoError(t, err)

		assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, forecast.BasisMonths)
		assert.Equal(t, 1600.0, forecast.NextMonthRevenue)
	})

	t.Run("Último mês zero - crescimento definido como 0", func(t *testing.T) {
		txs := []*domain.Transaction{
			income("2024-01", 1000, "Freelance"),
			income("2024-02", 500, "Freelance"),
			// receita zero registrada ainda cria o mês no histórico
			income("2024-03", 0, "Freelance"),
		}

		forecast, err := IncomeForecast(txs)
		require.NoError(t, err)

		assert.Equal(t, 0.0, forecast.GrowthPercent)
		assert.Equal(t, 0.0, forecast.NextMonthRevenue)
	})
}

func TestAnnualReport(t *testing.T) {
	txs := []*domain.Transaction{
		income("2023-05", 1000, "Freelance"),
		income("2024-01", 2000, "Freelance"),
		income("2024-01", 500, "Courses"),
		expense("2024-01", 300, "Software"),
		expense("2024-06", 200, "Marketing"),
		expense("2023-11", 400, "Software"),
	}
	txs[3].IsTaxDeductible = true // Software de 2024-01

	report := AnnualReport(txs, "2024")

	// Lançamentos de 2023 ficam fora do resumo e das categorias
	assert.Equal(t, "2024", report.Year)
	assert.Equal(t, 2500.0, report.Summary.Revenue)
	assert.Equal(t, 500.0, report.Summary.Expenses)
	assert.Equal(t, 2000.0, report.Summary.NetProfit)
	assert.NotContains(t, report.IncomeByCategory, "2023")
	assert.Equal(t, 2000.0, report.IncomeByCategory["Freelance"])
	assert.Equal(t, 500.0, report.IncomeByCategory["Courses"])
	assert.Equal(t, 300.0, report.ExpensesByCategory["Software"])
	assert.Equal(t, 200.0, report.ExpensesByCategory["Marketing"])

	assert.Equal(t, 300.0, report.TaxDeductible)

	// Quebra mensal independente por mês, ordenada
	require.Len(t, report.Months, 2)
	assert.Equal(t, "2024-01", report.Months[0].Month)
	assert.Equal(t, 2500.0, report.Months[0].Income)
	assert.Equal(t, 300.0, report.Months[0].Expense)
	assert.Equal(t, 2200.0, report.Months[0].Profit)
	assert.Equal(t, "2024-06", report.Months[1].Month)
	assert.Equal(t, 0.0, report.Months[1].Income)
	assert.Equal(t, 200.0, report.Months[1].Expense)
	assert.Equal(t, -200.0, report.Months[1].Profit)
}

func TestAnnualReport_SemLancamentosDoAno(t *testing.T) {
	report := AnnualReport([]*domain.Transaction{income("2023-01", 100, "Freelance")}, "2024")

	assert.Equal(t, 0.0, report.Summary.Revenue)
	assert.Empty(t, report.IncomeByCategory)
	assert.Empty(t, report.Months)
}
