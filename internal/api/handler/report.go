package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/internal/usecases/reporting"
	"github.com/vfg2006/creator-finance-api/pkg/apiErrors"
	"github.com/vfg2006/creator-finance-api/pkg/log"
	"github.com/vfg2006/creator-finance-api/pkg/middleware"
)

// GetAnnualReport devolve o demonstrativo anual calculado ao vivo.
// O ano vem do query param ?year=; na ausência usa o ano corrente.
func GetAnnualReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		year := r.URL.Query().Get("year")
		if year == "" {
			year = strconv.Itoa(time.Now().Year())
		}

		report, err := service.AnnualReport(userClaims.UserID, year)
		if err != nil {
			if err == reporting.ErrInvalidYear {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido, formato esperado YYYY", nil)
				return
			}

			logger.WithFields(log.Fields{
				"account_id": userClaims.UserID,
				"year":       year,
			}).WithError(err).Error("reports: failed to build annual report")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar relatório anual", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	})
}

// GetMonthlyHistory devolve as linhas mensais materializadas pelo agendador
func GetMonthlyHistory(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		year := r.URL.Query().Get("year")
		if year == "" {
			year = strconv.Itoa(time.Now().Year())
		}

		entries, err := service.MonthlyHistory(userClaims.UserID, year)
		if err != nil {
			if err == reporting.ErrInvalidYear {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido, formato esperado YYYY", nil)
				return
			}

			logger.WithFields(log.Fields{
				"account_id": userClaims.UserID,
				"year":       year,
			}).WithError(err).Error("reports: failed to list monthly history")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar histórico mensal", nil)
			return
		}

		if entries == nil {
			entries = []*domain.MonthlyReportEntry{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	})
}

// ExportTransactionsCSV baixa todos os lançamentos da conta em CSV
func ExportTransactionsCSV(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format("2006-01-02"))

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if err := service.ExportTransactionsCSV(userClaims.UserID, w); err != nil {
			logger.WithFields(log.Fields{
				"account_id": userClaims.UserID,
			}).WithError(err).Error("reports: failed to export transactions csv")
			return
		}

		logger.WithFields(log.Fields{
			"account_id": userClaims.UserID,
		}).Info("reports: transactions exported")
	})
}
