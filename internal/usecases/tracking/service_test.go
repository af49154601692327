package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creator-finance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/creator-finance-api/internal/domain"
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

func TestCreateTransaction_Validacao(t *testing.T) {
	tests := []struct {
		name    string
		req     *domain.CreateTransactionRequest
		wantErr error
	}{
		{
			name:    "Tipo desconhecido deve ser rejeitado",
			req:     &domain.CreateTransactionRequest{Type: "transfer", Amount: 10, Date: "2025-08-01"},
			wantErr: ErrInvalidTransactionType,
		},
		{
			name:    "Valor negativo deve ser rejeitado",
			req:     &domain.CreateTransactionRequest{Type: domain.TransactionTypeIncome, Amount: -5, Date: "2025-08-01"},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "Data fora do formato ISO deve ser rejeitada",
			req:     &domain.CreateTransactionRequest{Type: domain.TransactionTypeIncome, Amount: 10, Date: "01/08/2025"},
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _, _ := newTestService(t)

			result, err := service.CreateTransaction(1, tt.req)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateTransaction_Sucesso(t *testing.T) {
	service, transactionRepo, _, _, _ := newTestService(t)

	transactionRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(transaction *domain.Transaction) (*domain.Transaction, error) {
			transaction.ID = 42
			return transaction, nil
		})

	result, err := service.CreateTransaction(7, &domain.CreateTransactionRequest{
		Type:            domain.TransactionTypeExpense,
		Amount:          350.0,
		Category:        "Software",
		Date:            "2025-08-10",
		Description:     "Assinaturas de edição",
		IsTaxDeductible: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), result.ID)
	assert.Equal(t, 7, result.AccountID)
	assert.Equal(t, domain.TransactionTypeExpense, result.Type)
	assert.Equal(t, 350.0, result.Amount)
	assert.True(t, result.IsTaxDeductible)
	assert.Len(t, result.ExternalID, 6)
}

func TestUpdateTransaction_NaoEncontrado(t *testing.T) {
	service, transactionRepo, _, _, _ := newTestService(t)

	transactionRepo.EXPECT().GetByID(1, int64(99)).Return(nil, nil)

	result, err := service.UpdateTransaction(1, &domain.UpdateTransactionRequest{ID: 99})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateTransaction_AtualizacaoParcial(t *testing.T) {
	service, transactionRepo, _, _, _ := newTestService(t)

	existing := &domain.Transaction{
		ID:        10,
		AccountID: 1,
		Type:      domain.TransactionTypeIncome,
		Amount:    100.0,
		Category:  "AdSense",
		Date:      "2025-07-01",
	}

	transactionRepo.EXPECT().GetByID(1, int64(10)).Return(existing, nil)
	transactionRepo.EXPECT().Update(gomock.Any()).Return(nil)

	newAmount := 250.0
	newCategory := "Patrocínio"

	result, err := service.UpdateTransaction(1, &domain.UpdateTransactionRequest{
		ID:       10,
		Amount:   &newAmount,
		Category: &newCategory,
	})

	require.NoError(t, err)
	assert.Equal(t, 250.0, result.Amount)
	assert.Equal(t, "Patrocínio", result.Category)
	// Campos não enviados permanecem intactos
	assert.Equal(t, "2025-07-01", result.Date)
	assert.Equal(t, domain.TransactionTypeIncome, result.Type)
}

func TestUpdateTransaction_ValorNegativo(t *testing.T) {
	service, transactionRepo, _, _, _ := newTestService(t)

	transactionRepo.EXPECT().GetByID(1, int64(10)).Return(&domain.Transaction{ID: 10, AccountID: 1}, nil)

	negative := -1.0
	result, err := service.UpdateTransaction(1, &domain.UpdateTransactionRequest{ID: 10, Amount: &negative})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestBulkDeleteTransactions(t *testing.T) {
	t.Run("Seleção vazia deve ser rejeitada", func(t *testing.T) {
		service, _, _, _, _ := newTestService(t)

		count, err := service.BulkDeleteTransactions(1, &domain.BulkDeleteRequest{})

		assert.Zero(t, count)
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("Retorna a quantidade efetivamente removida", func(t *testing.T) {
		service, transactionRepo, _, _, _ := newTestService(t)

		// Um dos IDs pertence a outra conta e não conta no resultado
		transactionRepo.EXPECT().BulkDelete(1, []int64{1, 2, 3}).Return(int64(2), nil)

		count, err := service.BulkDeleteTransactions(1, &domain.BulkDeleteRequest{IDs: []int64{1, 2, 3}})

		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestBulkCategorizeTransactions_CategoriaVazia(t *testing.T) {
	service, _, _, _, _ := newTestService(t)

	count, err := service.BulkCategorizeTransactions(1, &domain.BulkCategorizeRequest{IDs: []int64{1}})

	assert.Zero(t, count)
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestCreateAffiliateProgram_Validacao(t *testing.T) {
	tests := []struct {
		name    string
		req     *domain.CreateAffiliateProgramRequest
		wantErr error
	}{
		{
			name:    "Nome vazio deve ser rejeitado",
			req:     &domain.CreateAffiliateProgramRequest{Clicks: 10},
			wantErr: ErrMissingName,
		},
		{
			name:    "Contadores negativos devem ser rejeitados",
			req:     &domain.CreateAffiliateProgramRequest{Name: "Loja", Clicks: -1},
			wantErr: ErrNegativeCounter,
		},
		{
			name:    "Comissão negativa deve ser rejeitada",
			req:     &domain.CreateAffiliateProgramRequest{Name: "Loja", Commissions: -10},
			wantErr: ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _, _ := newTestService(t)

			result, err := service.CreateAffiliateProgram(1, tt.req)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateGoal(t *testing.T) {
	t.Run("Mês fora do formato YYYY-MM deve ser rejeitado", func(t *testing.T) {
		service, _, _, _, _ := newTestService(t)

		result, err := service.CreateGoal(1, &domain.CreateGoalRequest{
			Type:         domain.GoalTypeIncome,
			TargetAmount: 1000,
			Month:        "08/2025",
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidMonth)
	})

	t.Run("Meta válida é persistida com identificador externo", func(t *testing.T) {
		service, _, _, _, goalRepo := newTestService(t)

		goalRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(goal *domain.Goal) (*domain.Goal, error) {
				goal.ID = 5
				return goal, nil
			})

		result, err := service.CreateGoal(3, &domain.CreateGoalRequest{
			Type:         domain.GoalTypeProfit,
			TargetAmount: 6000,
			Month:        "2025-08",
		})

		require.NoError(t, err)
		assert.Equal(t, 3, result.AccountID)
		assert.Equal(t, domain.GoalTypeProfit, result.Type)
		assert.Len(t, result.ExternalID, 6)
	})
}
