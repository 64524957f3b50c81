package handler

import (
	"net/http"

	"github.com/vfg2006/seller-sync/internal/api/handler/router"
	"github.com/vfg2006/seller-sync/internal/usecases/authenticating"
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
			Path:    "/v1/auth/token",
			Method:  http.MethodPost,
			Handler: IssueToken(service),
		},
	}
}

func Sync(trigger SyncTrigger) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/run",
			Method:  http.MethodPost,
			Handler: RunSync(trigger),
		},
		{
			Path:    "/v1/sync/status",
			Method:  http.MethodGet,
			Handler: SyncStatus(trigger),
		},
	}
}
