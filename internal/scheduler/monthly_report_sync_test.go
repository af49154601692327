package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/creator-finance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestMonthlyReportSyncService_syncMonthlyReports(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockTransactionRepo := mocks.NewMockTransactionRepository(ctrl)
	mockMonthlyReportRepo := mocks.NewMockMonthlyReportRepository(ctrl)

	service := &MonthlyReportSyncService{
		config:            MonthlyReportSyncConfig{MonthLookBack: 1},
		userRepo:          mockUserRepo,
		transactionRepo:   mockTransactionRepo,
		monthlyReportRepo: mockMonthlyReportRepo,
	}

	lastMonth := time.Now().AddDate(0, -1, 0).Format("2006-01")

	mockUserRepo.EXPECT().ListUser().Return([]*domain.User{
		{ID: 1, Active: true},
		{ID: 2, Active: false}, // conta inativa não é materializada
	}, nil)

	mockTransactionRepo.EXPECT().ListByAccountID(1).Return([]*domain.Transaction{
		{Type: domain.TransactionTypeIncome, Amount: 1200, Date: lastMonth + "-05"},
		{Type: domain.TransactionTypeExpense, Amount: 400, Date: lastMonth + "-20"},
		{Type: domain.TransactionTypeIncome, Amount: 999, Date: "2020-01-01"}, // fora do mês
	}, nil)

	mockMonthlyReportRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		DoAndReturn(func(entry *domain.MonthlyReportEntry) error {
			assert.Equal(t, 1, entry.AccountID)
			assert.Equal(t, lastMonth, entry.Month)
			assert.Equal(t, 1200.0, entry.Income)
			assert.Equal(t, 400.0, entry.Expense)
			assert.Equal(t, 800.0, entry.Profit)
			return nil
		})

	service.syncMonthlyReports()
}
