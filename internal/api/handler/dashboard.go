package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/internal/usecases/aggregating"
	"github.com/vfg2006/creator-finance-api/internal/usecases/dashboarding"
	"github.com/vfg2006/creator-finance-api/pkg/apiErrors"
	"github.com/vfg2006/creator-finance-api/pkg/log"
	"github.com/vfg2006/creator-finance-api/pkg/middleware"
)

// GetDashboard retorna o snapshot completo da conta com todos os campos
// derivados calculados pelo motor de agregação
func GetDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		logger.WithField("account_id", userClaims.UserID).Info("dashboard: fetching account snapshot")

		dashboard, err := service.GetDashboard(userClaims.UserID)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": userClaims.UserID,
				"error":      err.Error(),
			}).Error("dashboard: failed to build account snapshot")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar o dashboard", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(dashboard); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode response")
		}
	})
}

// GetForecast retorna a previsão de receita do próximo mês. Histórico com
// menos de três meses de receita responde 200 com available=false, espelhando
// o estado "sem dados" da interface.
func GetForecast(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		logger.WithField("account_id", userClaims.UserID).Info("forecast: computing next month projection")

		forecast, err := service.GetForecast(userClaims.UserID)
		if err != nil {
			if errors.Is(err, aggregating.ErrInsufficientHistory) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"available": false,
					"reason":    err.Error(),
				})
				return
			}

			logger.WithFields(log.Fields{
				"account_id": userClaims.UserID,
				"error":      err.Error(),
			}).Error("forecast: failed to compute projection")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular previsão", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"available": true,
			"forecast":  forecast,
		})
	})
}
