package reporting

import (
	"errors"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/vfg2006/creator-finance-api/infrastructure/repository"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/internal/usecases/aggregating"
	"github.com/vfg2006/creator-finance-api/pkg/utils"
)

// ErrInvalidYear indica que o ano informado não está no formato YYYY
var ErrInvalidYear = errors.New("ano inválido, formato esperado YYYY")

type Reporter interface {
	AnnualReport(accountID int, year string) (*domain.AnnualReport, error)
	MonthlyHistory(accountID int, year string) ([]*domain.MonthlyReportEntry, error)
	ExportTransactionsCSV(accountID int, w io.Writer) error
}

type Service struct {
	transactionRepo   repository.TransactionRepository
	monthlyReportRepo repository.MonthlyReportRepository
}

func NewService(
	transactionRepo repository.TransactionRepository,
	monthlyReportRepo repository.MonthlyReportRepository,
) Reporter {
	return &Service{
		transactionRepo:   transactionRepo,
		monthlyReportRepo: monthlyReportRepo,
	}
}

// AnnualReport recalcula o demonstrativo do ano ao vivo a partir dos
// lançamentos. A tabela de cache mensal é apenas trilha histórica e não
// participa deste cálculo.
func (s *Service) AnnualReport(accountID int, year string) (*domain.AnnualReport, error) {
	if !utils.ValidYear(year) {
		return nil, ErrInvalidYear
	}

	transactions, err := s.transactionRepo.ListByAccountID(accountID)
	if err != nil {
		return nil, err
	}

	return aggregating.AnnualReport(transactions, year), nil
}

// MonthlyHistory devolve as linhas materializadas pelo agendador para o ano
func (s *Service) MonthlyHistory(accountID int, year string) ([]*domain.MonthlyReportEntry, error) {
	if !utils.ValidYear(year) {
		return nil, ErrInvalidYear
	}

	return s.monthlyReportRepo.ListByAccountIDAndYear(accountID, year)
}

// transactionCSVRow espelha as colunas do export da página de relatórios
type transactionCSVRow struct {
	Date          string  `csv:"Date"`
	Type          string  `csv:"Type"`
	Category      string  `csv:"Category"`
	Description   string  `csv:"Description"`
	Amount        float64 `csv:"Amount"`
	TaxDeductible bool    `csv:"Tax Deductible"`
}

// ExportTransactionsCSV escreve todos os lançamentos da conta em CSV
func (s *Service) ExportTransactionsCSV(accountID int, w io.Writer) error {
	transactions, err := s.transactionRepo.ListByAccountID(accountID)
	if err != nil {
		return err
	}

	rows := make([]*transactionCSVRow, 0, len(transactions))
	for _, transaction := range transactions {
		rows = append(rows, &transactionCSVRow{
			Date:          transaction.Date,
			Type:          string(transaction.Type),
			Category:      transaction.Category,
			Description:   transaction.Description,
			Amount:        transaction.Amount,
			TaxDeductible: transaction.IsTaxDeductible,
		})
	}

	return gocsv.Marshal(rows, w)
}
