package handler

import (
	"net/http"

	"github.com/vfg2006/creator-finance-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/creator-finance-api/internal/api/handler/router"
	"github.com/vfg2006/creator-finance-api/internal/usecases/authenticating"
	"github.com/vfg2006/creator-finance-api/internal/usecases/dashboarding"
	"github.com/vfg2006/creator-finance-api/internal/usecases/reporting"
	"github.com/vfg2006/creator-finance-api/internal/usecases/tracking"
	"github.com/vfg2006/creator-finance-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/forecast",
			Method:      http.MethodGet,
			Handler:     GetForecast(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Transactions(service tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/transactions",
			Method:      http.MethodGet,
			Handler:     ListTransactions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/transactions",
			Method:      http.MethodPost,
			Handler:     CreateTransaction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		// Operações em lote vivem na coleção; httprouter não aceita um
		// segmento estático convivendo com :id no mesmo nível
		{
			Path:        "/v1/transactions",
			Method:      http.MethodDelete,
			Handler:     BulkDeleteTransactions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/transactions",
			Method:      http.MethodPut,
			Handler:     BulkCategorizeTransactions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/transactions/:id",
			Method:      http.MethodPut,
			Handler:     UpdateTransaction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/transactions/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteTransaction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Records(service tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/affiliate",
			Method:      http.MethodPost,
			Handler:     CreateAffiliateProgram(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/affiliate/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteAffiliateProgram(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products",
			Method:      http.MethodPost,
			Handler:     CreateDigitalProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteDigitalProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/goals",
			Method:      http.MethodPost,
			Handler:     CreateGoal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/goals/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteGoal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/annual",
			Method:      http.MethodGet,
			Handler:     GetAnnualReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/monthly",
			Method:      http.MethodGet,
			Handler:     GetMonthlyHistory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/export",
			Method:      http.MethodGet,
			Handler:     ExportTransactionsCSV(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func AI(dashboardService dashboarding.Dashboarder, integrator gemini.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ai/insights",
			Method:      http.MethodPost,
			Handler:     GenerateInsights(dashboardService, integrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/ai/logo-prompt",
			Method:      http.MethodPost,
			Handler:     GenerateLogoPrompt(integrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
