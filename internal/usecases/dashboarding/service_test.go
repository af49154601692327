package dashboarding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creator-finance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/internal/usecases/aggregating"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockTransactionRepository, *mocks.MockAffiliateProgramRepository, *mocks.MockDigitalProductRepository, *mocks.MockGoalRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	transactionRepo := mocks.NewMockTransactionRepository(ctrl)
	affiliateRepo := mocks.NewMockAffiliateProgramRepository(ctrl)
	productRepo := mocks.NewMockDigitalProductRepository(ctrl)
	goalRepo := mocks.NewMockGoalRepository(ctrl)

	service := &Service{
		transactionRepo: transactionRepo,
		affiliateRepo:   affiliateRepo,
		productRepo:     productRepo,
		goalRepo:        goalRepo,
	}

	return service, transactionRepo, affiliateRepo, productRepo, goalRepo
}

func TestGetDashboard(t *testing.T) {
	service, transactionRepo, affiliateRepo, productRepo, goalRepo := newTestService(t)

	transactions := []*domain.Transaction{
		{ID: 1, Type: domain.TransactionTypeIncome, Amount: 1000, Category: "AdSense", Date: "2025-07-05"},
		{ID: 2, Type: domain.TransactionTypeIncome, Amount: 500, Category: "Patrocínio", Date: "2025-08-02"},
		{ID: 3, Type: domain.TransactionTypeExpense, Amount: 300, Category: "Software", Date: "2025-08-10"},
	}
	programs := []*domain.AffiliateProgram{
		{ID: 1, Name: "Ferramenta de Edição", Clicks: 100, Conversions: 10, Commissions: 200},
	}
	products := []*domain.DigitalProduct{
		{ID: 1, Name: "Curso", Sales: 10, GrossRevenue: 1000, PlatformFee: 100},
	}
	goals := []*domain.Goal{
		{ID: 1, Type: domain.GoalTypeIncome, TargetAmount: 1000, Month: "2025-08"},
	}

	transactionRepo.EXPECT().ListByAccountID(1).Return(transactions, nil)
	affiliateRepo.EXPECT().ListByAccountID(1).Return(programs, nil)
	productRepo.EXPECT().ListByAccountID(1).Return(products, nil)
	goalRepo.EXPECT().ListByAccountID(1).Return(goals, nil)

	dashboard, err := service.GetDashboard(1)

	require.NoError(t, err)
	require.NotNil(t, dashboard.Summary)
	assert.Equal(t, 1500.0, dashboard.Summary.Revenue)
	assert.Equal(t, 300.0, dashboard.Summary.Expenses)
	assert.Equal(t, 1200.0, dashboard.Summary.NetProfit)
	assert.Equal(t, 200.0, dashboard.Summary.AffiliateEarnings)

	require.Len(t, dashboard.RevenueTrend, 2)
	assert.Equal(t, "2025-07", dashboard.RevenueTrend[0].Month)
	assert.Equal(t, "2025-08", dashboard.RevenueTrend[1].Month)

	assert.Equal(t, map[string]float64{"AdSense": 1000, "Patrocínio": 500}, dashboard.IncomeByCategory)
	assert.Equal(t, map[string]float64{"Software": 300}, dashboard.ExpensesByCategory)

	require.Len(t, dashboard.GoalProgress, 1)
	assert.Equal(t, 500.0, dashboard.GoalProgress[0].CurrentAmount)
	assert.Equal(t, 50.0, dashboard.GoalProgress[0].Progress)

	// As listas cruas acompanham os derivados para o front não refazer leituras
	assert.Equal(t, transactions, dashboard.Transactions)
	assert.Equal(t, programs, dashboard.AffiliatePrograms)
	assert.Equal(t, products, dashboard.DigitalProducts)
	assert.Equal(t, goals, dashboard.Goals)
}

func TestGetDashboard_ErroDeLeitura(t *testing.T) {
	service, transactionRepo, _, _, _ := newTestService(t)

	transactionRepo.EXPECT().ListByAccountID(1).Return(nil, errors.New("conexão recusada"))

	dashboard, err := service.GetDashboard(1)

	assert.Nil(t, dashboard)
	assert.Error(t, err)
}

func TestGetForecast_HistoricoInsuficiente(t *testing.T) {
	service, transactionRepo, _, _, _ := newTestService(t)

	// Apenas dois meses distintos de receita
	transactionRepo.EXPECT().ListByAccountID(1).Return([]*domain.Transaction{
		{Type: domain.TransactionTypeIncome, Amount: 100, Date: "2025-06-01"},
		{Type: domain.TransactionTypeIncome, Amount: 200, Date: "2025-07-01"},
	}, nil)

	forecast, err := service.GetForecast(1)

	assert.Nil(t, forecast)
	assert.ErrorIs(t, err, aggregating.ErrInsufficientHistory)
}

func TestGetForecast(t *testing.T) {
	service, transactionRepo, _, _, _ := newTestService(t)

	transactionRepo.EXPECT().ListByAccountID(1).Return([]*domain.Transaction{
		{Type: domain.TransactionTypeIncome, Amount: 1000, Date: "2025-06-01"},
		{Type: domain.TransactionTypeIncome, Amount: 1500, Date: "2025-07-01"},
		{Type: domain.TransactionTypeIncome, Amount: 2000, Date: "2025-08-01"},
	}, nil)

	forecast, err := service.GetForecast(1)

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06", "2025-07", "2025-08"}, forecast.BasisMonths)
	assert.Equal(t, 500.0, forecast.Trend)
	assert.Equal(t, 2500.0, forecast.NextMonthRevenue)
	assert.Equal(t, 25.0, forecast.GrowthPercent)
}
