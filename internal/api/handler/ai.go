package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vfg2006/creator-finance-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"github.com/vfg2006/creator-finance-api/internal/usecases/dashboarding"
	"github.com/vfg2006/creator-finance-api/pkg/apiErrors"
	"github.com/vfg2006/creator-finance-api/pkg/log"
	"github.com/vfg2006/creator-finance-api/pkg/middleware"
)

// LogoPromptRequest é o corpo do endpoint de prompt de logotipo
type LogoPromptRequest struct {
	BrandName string `json:"brandName"`
	Style     string `json:"style"`
}

// GenerateInsights monta o snapshot financeiro da conta e pede ao Gemini
// uma análise em texto. Sem chave de API configurada responde 503.
func GenerateInsights(dashboardService dashboarding.Dashboarder, integrator gemini.Integrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		dashboard, err := dashboardService.GetDashboard(userClaims.UserID)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": userClaims.UserID,
			}).WithError(err).Error("ai: failed to build dashboard snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar dados financeiros", nil)
			return
		}

		insights, err := integrator.GenerateInsights(r.Context(), dashboard)
		if err != nil {
			if errors.Is(err, gemini.ErrUnavailable) {
				apiErrors.WriteError(w, apiErrors.ErrFeatureDisabled, "Insights por IA não estão configurados", nil)
				return
			}

			logger.WithFields(log.Fields{
				"account_id": userClaims.UserID,
			}).WithError(err).Error("ai: failed to generate insights")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao gerar insights", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"insights": insights})
	})
}

// GenerateLogoPrompt devolve uma descrição de logotipo para a marca do criador
func GenerateLogoPrompt(integrator gemini.Integrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req LogoPromptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.BrandName == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da marca é obrigatório", nil)
			return
		}

		prompt, err := integrator.GenerateLogoPrompt(r.Context(), req.BrandName, req.Style)
		if err != nil {
			if errors.Is(err, gemini.ErrUnavailable) {
				apiErrors.WriteError(w, apiErrors.ErrFeatureDisabled, "Insights por IA não estão configurados", nil)
				return
			}

			logger.WithFields(log.Fields{
				"account_id": userClaims.UserID,
			}).WithError(err).Error("ai: failed to generate logo prompt")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao gerar prompt de logotipo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"prompt": prompt})
	})
}
