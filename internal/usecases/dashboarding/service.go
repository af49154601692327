package dashboarding

import (
	"github.com/pkg/errors"
	"github.com/vfg2006/creator-finance-api/infrastructure/repository"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/internal/usecases/aggregating"
)

type Dashboarder interface {
	GetDashboard(accountID int) (*domain.DashboardResponse, error)
	GetForecast(accountID int) (*domain.Forecast, error)
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
) Dashboarder {
	return &Service{
		transactionRepo: transactionRepo,
		affiliateRepo:   affiliateRepo,
		productRepo:     productRepo,
		goalRepo:        goalRepo,
	}
}

// GetDashboard busca o snapshot da conta e delega todos os campos derivados
// ao motor de agregação. As quatro listas são lidas uma única vez para que o
// resultado seja consistente entre si.
func (s *Service) GetDashboard(accountID int) (*domain.DashboardResponse, error) {
	transactions, err := s.transactionRepo.ListByAccountID(accountID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar lançamentos da conta")
	}

	programs, err := s.affiliateRepo.ListByAccountID(accountID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar programas de afiliado da conta")
	}

	products, err := s.productRepo.ListByAccountID(accountID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar produtos digitais da conta")
	}

	goals, err := s.goalRepo.ListByAccountID(accountID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar metas da conta")
	}

	return &domain.DashboardResponse{
		Summary:            aggregating.Summarize(transactions, programs),
		RevenueTrend:       aggregating.MonthlyRevenueTrend(transactions),
		IncomeByCategory:   aggregating.CategoryBreakdown(transactions, domain.TransactionTypeIncome),
		ExpensesByCategory: aggregating.CategoryBreakdown(transactions, domain.TransactionTypeExpense),
		AffiliateRollup:    aggregating.AffiliateRollup(programs),
		ProductRollup:      aggregating.ProductRollup(products),
		GoalProgress:       aggregating.GoalProgressAll(goals, transactions),
		Transactions:       transactions,
		AffiliatePrograms:  programs,
		DigitalProducts:    products,
		Goals:              goals,
	}, nil
}

// GetForecast devolve a previsão de receita do próximo mês. Quando o
// histórico tem menos de três meses distintos de receita, o erro
// aggregating.ErrInsufficientHistory é repassado sem tradução para que o
// handler responda com o estado "sem dados" em vez de falha.
func (s *Service) GetForecast(accountID int) (*domain.Forecast, error) {
	transactions, err := s.transactionRepo.ListByAccountID(accountID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar lançamentos da conta")
	}

	return aggregating.IncomeForecast(transactions)
}
