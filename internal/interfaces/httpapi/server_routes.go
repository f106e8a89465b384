package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerEventRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sports/{sport}/events", handler.ListEventsBySport)
	mux.HandleFunc("GET /v1/sports/{sport}/events/today", handler.ListTodaysEventsBySport)
	mux.HandleFunc("GET /v1/events/live", handler.ListLiveEvents)
	mux.HandleFunc("GET /v1/providers/health", handler.GetProviderHealth)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalAdminToken string) {
	mux.Handle("POST /v1/internal/providers/{provider}/reset", RequireInternalAdminToken(internalAdminToken, http.HandlerFunc(handler.ResetProvider)))
}
