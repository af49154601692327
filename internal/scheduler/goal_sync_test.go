package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/creator-finance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestGoalSyncService_syncGoals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGoalRepo := mocks.NewMockGoalRepository(ctrl)
	mockTransactionRepo := mocks.NewMockTransactionRepository(ctrl)

	service := &GoalSyncService{
		goalRepo:        mockGoalRepo,
		transactionRepo: mockTransactionRepo,
	}

	tests := []struct {
		name  string
		setup func()
	}{
		{
			name: "Metas de contas distintas leem os lançamentos de cada conta uma única vez",
			setup: func() {
				mockGoalRepo.EXPECT().ListAll().Return([]*domain.Goal{
					{ID: 1, AccountID: 1, Type: domain.GoalTypeIncome, TargetAmount: 1000, Month: "2025-08"},
					{ID: 2, AccountID: 1, Type: domain.GoalTypeProfit, TargetAmount: 500, Month: "2025-08"},
					{ID: 3, AccountID: 2, Type: domain.GoalTypeIncome, TargetAmount: 2000, Month: "2025-08"},
				}, nil)

				// Conta 1: receita 800, despesa 300 em agosto
				mockTransactionRepo.EXPECT().ListByAccountID(1).Return([]*domain.Transaction{
					{Type: domain.TransactionTypeIncome, Amount: 800, Date: "2025-08-05"},
					{Type: domain.TransactionTypeExpense, Amount: 300, Date: "2025-08-10"},
				}, nil).Times(1)

				// Conta 2: receita 2000 em agosto
				mockTransactionRepo.EXPECT().ListByAccountID(2).Return([]*domain.Transaction{
					{Type: domain.TransactionTypeIncome, Amount: 2000, Date: "2025-08-01"},
				}, nil).Times(1)

				mockGoalRepo.EXPECT().UpdateCurrentAmount(int64(1), 800.0).Return(nil)
				mockGoalRepo.EXPECT().UpdateCurrentAmount(int64(2), 500.0).Return(nil)
				mockGoalRepo.EXPECT().UpdateCurrentAmount(int64(3), 2000.0).Return(nil)
			},
		},
		{
			name: "Sem metas nenhuma conta é consultada",
			setup: func() {
				mockGoalRepo.EXPECT().ListAll().Return(nil, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			service.syncGoals()
		})
	}
}

func TestGoalSyncService_GetStatus(t *testing.T) {
	service := &GoalSyncService{
		config: GoalSyncConfig{
			CronSchedule: "0 3 * * *",
			SyncEnabled:  true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, true, status["sync_enabled"])
}
