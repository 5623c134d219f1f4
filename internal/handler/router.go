package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	workflowHandler *WorkflowHandler,
	metricsHandler http.Handler,
	allowedOrigins []string,
	middlewares ...mux.MiddlewareFunc,
) http.Handler {
	router := mux.NewRouter()
	router.Use(middlewares...)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-uploader"}`))
	}).Methods("GET")

	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler).Methods("GET")
	}

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Session lifecycle
	api.HandleFunc("/sessions", workflowHandler.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", workflowHandler.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", workflowHandler.DeleteSession).Methods("DELETE")

	// Workflow events
	api.HandleFunc("/sessions/{id}/picker", workflowHandler.SelectFromPicker).Methods("POST")
	api.HandleFunc("/sessions/{id}/drop", workflowHandler.DropFile).Methods("POST")
	api.HandleFunc("/sessions/{id}/dragover", workflowHandler.DragOver).Methods("POST")
	api.HandleFunc("/sessions/{id}/file", workflowHandler.ClearFile).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/submit", workflowHandler.Submit).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
