// Package main wires the HTTP surface of the ContactDeck backend.
package main

import (
	"net/http"

	"github.com/contactdeck/backend/cmd/server/handlers"
	"github.com/contactdeck/backend/internal/broadcast"
	"github.com/contactdeck/backend/internal/config"
	"github.com/contactdeck/backend/internal/contacts"
	"github.com/contactdeck/backend/internal/metrics"
)

// newRouter builds the full route table: REST endpoints, the websocket
// subscription endpoint, health, and metrics.
func newRouter(cfg *config.Config, svc *contacts.Service, broker *broadcast.Broker) http.Handler {
	contactHandler := handlers.NewContactHandler(svc, cfg.HTTP.PageSize, cfg.HTTP.MaxPageSize)
	externalHandler := handlers.NewExternalHandler(svc)
	upgrader := newUpgrader(cfg.Origins)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/contacts", contactHandler.List)
	mux.HandleFunc("POST /api/contacts", contactHandler.Create)
	mux.HandleFunc("GET /api/contacts/{id}", contactHandler.Get)
	mux.HandleFunc("PUT /api/contacts/{id}", contactHandler.Update)
	mux.HandleFunc("PATCH /api/contacts/{id}", contactHandler.Update)
	mux.HandleFunc("DELETE /api/contacts/{id}", contactHandler.Delete)
	mux.HandleFunc("GET /api/contacts/{id}/history", contactHandler.History)

	mux.HandleFunc("POST /api/external-update", externalHandler.Update)

	mux.HandleFunc("GET /ws/contacts", handleWebSocket(broker, upgrader))

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"contactdeck"}`))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	var handler http.Handler = mux
	handler = handlers.CORS(cfg.Origins)(handler)
	handler = handlers.RequestLogger(handler)
	return handler
}
