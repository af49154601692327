package reporting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creator-finance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockTransactionRepository, *mocks.MockMonthlyReportRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	transactionRepo := mocks.NewMockTransactionRepository(ctrl)
	monthlyReportRepo := mocks.NewMockMonthlyReportRepository(ctrl)

	service := &Service{
		transactionRepo:   transactionRepo,
		monthlyReportRepo: monthlyReportRepo,
	}

	return service, transactionRepo, monthlyReportRepo
}

func TestAnnualReport(t *testing.T) {
	t.Run("Ano fora do formato YYYY deve ser rejeitado", func(t *testing.T) {
		service, _, _ := newTestService(t)

		report, err := service.AnnualReport(1, "25")

		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrInvalidYear)
	})

	t.Run("Considera apenas lançamentos do ano informado", func(t *testing.T) {
		service, transactionRepo, _ := newTestService(t)

		transactionRepo.EXPECT().ListByAccountID(1).Return([]*domain.Transaction{
			{Type: domain.TransactionTypeIncome, Amount: 1000, Category: "AdSense", Date: "2025-03-01"},
			{Type: domain.TransactionTypeExpense, Amount: 200, Category: "Software", Date: "2025-03-10", IsTaxDeductible: true},
			{Type: domain.TransactionTypeIncome, Amount: 9999, Category: "AdSense", Date: "2024-12-31"},
		}, nil)

		report, err := service.AnnualReport(1, "2025")

		require.NoError(t, err)
		assert.Equal(t, "2025", report.Year)
		assert.Equal(t, 1000.0, report.Summary.Revenue)
		assert.Equal(t, 200.0, report.Summary.Expenses)
		assert.Equal(t, 200.0, report.TaxDeductible)
		require.Len(t, report.Months, 1)
		assert.Equal(t, "2025-03", report.Months[0].Month)
	})
}

func TestMonthlyHistory_AnoInvalido(t *testing.T) {
	service, _, _ := newTestService(t)

	entries, err := service.MonthlyHistory(1, "agosto")

	assert.Nil(t, entries)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestExportTransactionsCSV(t *testing.T) {
	service, transactionRepo, _ := newTestService(t)

	transactionRepo.EXPECT().ListByAccountID(1).Return([]*domain.Transaction{
		{Type: domain.TransactionTypeIncome, Amount: 4500, Category: "Patrocínio", Date: "2025-05-12", Description: "Campanha de marca"},
		{Type: domain.TransactionTypeExpense, Amount: 350, Category: "Software", Date: "2025-05-10", Description: "Assinaturas", IsTaxDeductible: true},
	}, nil)

	var buf bytes.Buffer
	err := service.ExportTransactionsCSV(1, &buf)

	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Type,Category,Description,Amount,Tax Deductible", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "2025-05-12")
	assert.Contains(t, lines[1], "income")
	assert.Contains(t, lines[2], "true")
}

func TestExportTransactionsCSV_SemLancamentos(t *testing.T) {
	service, transactionRepo, _ := newTestService(t)

	transactionRepo.EXPECT().ListByAccountID(1).Return([]*domain.Transaction{}, nil)

	var buf bytes.Buffer
	err := service.ExportTransactionsCSV(1, &buf)

	require.NoError(t, err)
	// Apenas o cabeçalho
	assert.Equal(t, "Date,Type,Category,Description,Amount,Tax Deductible", strings.TrimSpace(buf.String()))
}
