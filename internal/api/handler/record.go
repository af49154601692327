package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/internal/usecases/tracking"
	"github.com/vfg2006/creator-finance-api/pkg/apiErrors"
	"github.com/vfg2006/creator-finance-api/pkg/log"
	"github.com/vfg2006/creator-finance-api/pkg/middleware"
)

// CreateAffiliateProgram registra um novo programa de afiliado para a conta
func CreateAffiliateProgram(service tracking.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateAffiliateProgramRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		program, err := service.CreateAffiliateProgram(userClaims.UserID, &req)
		if err != nil {
			writeTrackingError(w, logger, userClaims.UserID, err, "affiliate: failed to create program")
			return
		}

		logger.WithFields(log.Fields{
			"account_id":  userClaims.UserID,
			"external_id": program.ExternalID,
		}).Info("affiliate: program created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(program)
	})
}

// CreateDigitalProduct registra um novo produto digital para a conta
func CreateDigitalProduct(service tracking.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateDigitalProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		product, err := service.CreateDigitalProduct(userClaims.UserID, &req)
		if err != nil {
			writeTrackingError(w, logger, userClaims.UserID, err, "products: failed to create product")
			return
		}

		logger.WithFields(log.Fields{
			"account_id":  userClaims.UserID,
			"external_id": product.ExternalID,
		}).Info("products: product created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(product)
	})
}

// CreateGoal registra uma nova meta mensal para a conta
func CreateGoal(service tracking.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		goal, err := service.CreateGoal(userClaims.UserID, &req)
		if err != nil {
			writeTrackingError(w, logger, userClaims.UserID, err, "goals: failed to create goal")
			return
		}

		logger.WithFields(log.Fields{
			"account_id":  userClaims.UserID,
			"external_id": goal.ExternalID,
		}).Info("goals: goal created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(goal)
	})
}

// DeleteAffiliateProgram remove um programa de afiliado da conta
func DeleteAffiliateProgram(service tracking.Tracker) http.Handler {
	return deleteRecordHandler("ID do programa inválido", "affiliate: failed to delete program", service.DeleteAffiliateProgram)
}

// DeleteDigitalProduct remove um produto digital da conta
func DeleteDigitalProduct(service tracking.Tracker) http.Handler {
	return deleteRecordHandler("ID do produto inválido", "products: failed to delete product", service.DeleteDigitalProduct)
}

// DeleteGoal remove uma meta da conta
func DeleteGoal(service tracking.Tracker) http.Handler {
	return deleteRecordHandler("ID da meta inválido", "goals: failed to delete goal", service.DeleteGoal)
}

// deleteRecordHandler concentra o fluxo comum de remoção por :id escopada
// pela conta do token
func deleteRecordHandler(invalidIDMessage, logMessage string, deleteFn func(accountID int, id int64) error) http.Handler {
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
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, invalidIDMessage, nil)
			return
		}

		if err := deleteFn(userClaims.UserID, id); err != nil {
			writeTrackingError(w, logger, userClaims.UserID, err, logMessage)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
