package tracking

import (
	"errors"
	"fmt"

	"github.com/vfg2006/creator-finance-api/infrastructure/repository"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/pkg/utils"
)

// Erros de validação da camada de escrita. O motor de agregação assume
// entradas já saneadas; toda a validação acontece aqui.
var (
	ErrInvalidTransactionType = errors.New("tipo de lançamento inválido")
	ErrInvalidGoalType        = errors.New("tipo de meta inválido")
	ErrNegativeAmount         = errors.New("valor não pode ser negativo")
	ErrInvalidDate            = errors.New("data inválida, formato esperado YYYY-MM-DD")
	ErrInvalidMonth           = errors.New("mês inválido, formato esperado YYYY-MM")
	ErrMissingName            = errors.New("nome é obrigatório")
	ErrNegativeCounter        = errors.New("cliques e conversões não podem ser negativos")
	ErrRecordNotFound         = errors.New("registro não encontrado para a conta")
	ErrEmptySelection         = errors.New("nenhum lançamento selecionado")
)

type Tracker interface {
	ListTransactions(accountID int) ([]*domain.Transaction, error)
	CreateTransaction(accountID int, req *domain.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(accountID int, req *domain.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(accountID int, transactionID int64) error
	BulkDeleteTransactions(accountID int, req *domain.BulkDeleteRequest) (int64, error)
	BulkCategorizeTransactions(accountID int, req *domain.BulkCategorizeRequest) (int64, error)

	CreateAffiliateProgram(accountID int, req *domain.CreateAffiliateProgramRequest) (*domain.AffiliateProgram, error)
	DeleteAffiliateProgram(accountID int, programID int64) error
	CreateDigitalProduct(accountID int, req *domain.CreateDigitalProductRequest) (*domain.DigitalProduct, error)
	DeleteDigitalProduct(accountID int, productID int64) error
	CreateGoal(accountID int, req *domain.CreateGoalRequest) (*domain.Goal, error)
	DeleteGoal(accountID int, goalID int64) error
}

type Service struct {
	transactionRepo repository.TransactionRepository
	affiliateRepo   repository.AffiliateProgramRepository
	productRepo     repository.DigitalProductRepository
	goalRepo        repository.GoalRepository
}

func NewService(
	transactionRepo repository.TransactionRepository,
	affiliateRepo repository.AffiliateProgramRepository,
	productRepo repository.DigitalProductRepository,
	goalRepo repository.GoalRepository,
) Tracker {
	return &Service{
		transactionRepo: transactionRepo,
		affiliateRepo:   affiliateRepo,
		productRepo:     productRepo,
		goalRepo:        goalRepo,
	}
}

func (s *Service) ListTransactions(accountID int) ([]*domain.Transaction, error) {
	return s.transactionRepo.ListByAccountID(accountID)
}

func (s *Service) CreateTransaction(accountID int, req *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	if !req.Type.IsValid() {
		return nil, ErrInvalidTransactionType
	}

	if req.Amount < 0 {
		return nil, ErrNegativeAmount
	}

	if !utils.ValidDate(req.Date) {
		return nil, ErrInvalidDate
	}

	externalID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador externo: %w", err)
	}

	transaction := &domain.Transaction{
		ExternalID:      externalID,
		AccountID:       accountID,
		Type:            req.Type,
		Amount:          req.Amount,
		Category:        req.Category,
		Date:            req.Date,
		Description:     req.Description,
		IsTaxDeductible: req.IsTaxDeductible,
	}

	return s.transactionRepo.Create(transaction)
}

func (s *Service) UpdateTransaction(accountID int, req *domain.UpdateTransactionRequest) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(accountID, req.ID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, ErrRecordNotFound
	}

	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, ErrNegativeAmount
		}
		transaction.Amount = *req.Amount
	}

	if req.Category != nil {
		transaction.Category = *req.Category
	}

	if req.Date != nil {
		if !utils.ValidDate(*req.Date) {
			return nil, ErrInvalidDate
		}
		transaction.Date = *req.Date
	}

	if req.Description != nil {
		transaction.Description = *req.Description
	}

	if req.IsTaxDeductible != nil {
		transaction.IsTaxDeductible = *req.IsTaxDeductible
	}

	if err := s.transactionRepo.Update(transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

func (s *Service) DeleteTransaction(accountID int, transactionID int64) error {
	return s.transactionRepo.Delete(accountID, transactionID)
}

// BulkDeleteTransactions remove os lançamentos selecionados. O retorno é a
// quantidade efetivamente removida; IDs de outras contas não contam.
func (s *Service) BulkDeleteTransactions(accountID int, req *domain.BulkDeleteRequest) (int64, error) {
	if len(req.IDs) == 0 {
		return 0, ErrEmptySelection
	}

	return s.transactionRepo.BulkDelete(accountID, req.IDs)
}

func (s *Service) BulkCategorizeTransactions(accountID int, req *domain.BulkCategorizeRequest) (int64, error) {
	if len(req.IDs) == 0 {
		return 0, ErrEmptySelection
	}

	if req.Category == "" {
		return 0, ErrMissingName
	}

	return s.transactionRepo.BulkCategorize(accountID, req.IDs, req.Category)
}

func (s *Service) CreateAffiliateProgram(accountID int, req *domain.CreateAffiliateProgramRequest) (*domain.AffiliateProgram, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}

	if req.Clicks < 0 || req.Conversions < 0 {
		return nil, ErrNegativeCounter
	}

	if req.Commissions < 0 {
		return nil, ErrNegativeAmount
	}

	externalID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador externo: %w", err)
	}

	program := &domain.AffiliateProgram{
		ExternalID:  externalID,
		AccountID:   accountID,
		Name:        req.Name,
		Clicks:      req.Clicks,
		Conversions: req.Conversions,
		Commissions: req.Commissions,
	}

	return s.affiliateRepo.Create(program)
}

func (s *Service) DeleteAffiliateProgram(accountID int, programID int64) error {
	return s.affiliateRepo.Delete(accountID, programID)
}

func (s *Service) CreateDigitalProduct(accountID int, req *domain.CreateDigitalProductRequest) (*domain.DigitalProduct, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}

	if req.Sales < 0 {
		return nil, ErrNegativeCounter
	}

	if req.GrossRevenue < 0 || req.PlatformFee < 0 {
		return nil, ErrNegativeAmount
	}

	externalID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador externo: %w", err)
	}

	product := &domain.DigitalProduct{
		ExternalID:   externalID,
		AccountID:    accountID,
		Name:         req.Name,
		Sales:        req.Sales,
		GrossRevenue: req.GrossRevenue,
		PlatformFee:  req.PlatformFee,
	}

	return s.productRepo.Create(product)
}

func (s *Service) DeleteDigitalProduct(accountID int, productID int64) error {
	return s.productRepo.Delete(accountID, productID)
}

func (s *Service) CreateGoal(accountID int, req *domain.CreateGoalRequest) (*domain.Goal, error) {
	if !req.Type.IsValid() {
		return nil, ErrInvalidGoalType
	}

	if req.TargetAmount < 0 {
		return nil, ErrNegativeAmount
	}

	if !utils.ValidMonth(req.Month) {
		return nil, ErrInvalidMonth
	}

	externalID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador externo: %w", err)
	}

	goal := &domain.Goal{
		ExternalID:   externalID,
		AccountID:    accountID,
		Type:         req.Type,
		TargetAmount: req.TargetAmount,
		Month:        req.Month,
	}

	return s.goalRepo.Create(goal)
}

func (s *Service) DeleteGoal(accountID int, goalID int64) error {
	return s.goalRepo.Delete(accountID, goalID)
}
