package handler

import (
	"net/http"

	"github.com/vfg2006/desossa-api/internal/api/handler/router"
	"github.com/vfg2006/desossa-api/internal/usecases/authenticating"
	"github.com/vfg2006/desossa-api/internal/usecases/projecting"
	"github.com/vfg2006/desossa-api/internal/usecases/reconciling"
	"github.com/vfg2006/desossa-api/pkg/middleware"
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
	}
}

func Yield(service projecting.Projector) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/yield/tables",
			Method:      http.MethodGet,
			Handler:     ListYieldTables(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/yield/projection",
			Method:      http.MethodPost,
			Handler:     ProjectYield(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/yield/records",
			Method:      http.MethodPost,
			Handler:     RecordYield(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/yield/records",
			Method:      http.MethodGet,
			Handler:     ListYieldRecords(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Availability(service reconciling.Reconciler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/availability",
			Method:      http.MethodGet,
			Handler:     GetAvailability(service),
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
