package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/internal/usecases/tracking"
	"github.com/vfg2006/creator-finance-api/pkg/apiErrors"
	"github.com/vfg2006/creator-finance-api/pkg/log"
	"github.com/vfg2006/creator-finance-api/pkg/middleware"
)

// ListTransactions retorna todos os lançamentos da conta
func ListTransactions(service tracking.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		transactions, err := service.ListTransactions(userClaims.UserID)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": userClaims.UserID,
				"error":      err.Error(),
			}).Error("transactions: failed to list account transactions")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar lançamentos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	})
}

// CreateTransaction registra um novo lançamento para a conta
func CreateTransaction(service tracking.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		transaction, err := service.CreateTransaction(userClaims.UserID, &req)
		if err != nil {
			writeTrackingError(w, logger, userClaims.UserID, err, "transactions: failed to create transaction")
			return
		}

		logger.WithFields(log.Fields{
			"account_id":  userClaims.UserID,
			"external_id": transaction.ExternalID,
		}).Info("transactions: transaction created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(transaction)
	})
}

// UpdateTransaction atualiza um lançamento existente da conta
func UpdateTransaction(service tracking.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do lançamento inválido", nil)
			return
		}

		var req domain.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = id

		transaction, err := service.UpdateTransaction(userClaims.UserID, &req)
		if err != nil {
			writeTrackingError(w, logger, userClaims.UserID, err, "transactions: failed to update transaction")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transaction)
	})
}

// DeleteTransaction remove um lançamento da conta
func DeleteTransaction(service tracking.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do lançamento inválido", nil)
			return
		}

		if err := service.DeleteTransaction(userClaims.UserID, id); err != nil {
			writeTrackingError(w, logger, userClaims.UserID, err, "transactions: failed to delete transaction")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// BulkDeleteTransactions remove os lançamentos selecionados da conta
func BulkDeleteTransactions(service tracking.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.BulkDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		deleted, err := service.BulkDeleteTransactions(userClaims.UserID, &req)
		if err != nil {
			writeTrackingError(w, logger, userClaims.UserID, err, "transactions: failed to bulk delete")
			return
		}

		logger.WithFields(log.Fields{
			"account_id": userClaims.UserID,
			"requested":  len(req.IDs),
			"deleted":    deleted,
		}).Info("transactions: bulk delete completed")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"deleted": deleted,
		})
	})
}

// BulkCategorizeTransactions aplica uma categoria aos lançamentos selecionados
func BulkCategorizeTransactions(service tracking.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.BulkCategorizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		updated, err := service.BulkCategorizeTransactions(userClaims.UserID, &req)
		if err != nil {
			writeTrackingError(w, logger, userClaims.UserID, err, "transactions: failed to bulk categorize")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"updated": updated,
		})
	})
}

// writeTrackingError converte erros da camada de escrita em respostas da API
func writeTrackingError(w http.ResponseWriter, logger log.Logger, accountID int, err error, logMsg string) {
	switch {
	case errors.Is(err, tracking.ErrInvalidTransactionType),
		errors.Is(err, tracking.ErrInvalidGoalType),
		errors.Is(err, tracking.ErrNegativeAmount),
		errors.Is(err, tracking.ErrNegativeCounter),
		errors.Is(err, tracking.ErrEmptySelection),
		errors.Is(err, tracking.ErrMissingName):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, tracking.ErrInvalidDate),
		errors.Is(err, tracking.ErrInvalidMonth):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, tracking.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "Registro não encontrado para a conta", nil)

	default:
		logger.WithFields(log.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error(logMsg)

		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar lançamentos", nil)
	}
}
