package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "github.com/rileyblackwell/imagi-oasis/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(
	generationHandler *GenerationHandler,
	conversationHandler *ConversationHandler,
	creditHandler *CreditHandler,
	modelHandler *ModelHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	// These are applied to every request.
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request with useful info.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// --- Public Routes ---

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// A simple health check endpoint. Crucial for container orchestration systems
	// like Kubernetes to perform liveness and readiness probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON API routes get a request timeout to prevent client
		// connections from hanging indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			// --- Conversations ---
			r.Get("/conversations", conversationHandler.HandleListConversations)
			r.Get("/conversations/{conversationID}", conversationHandler.HandleGetConversation)
			r.Delete("/conversations/{conversationID}", conversationHandler.HandleDeleteConversation)
			r.Post("/conversations/{conversationID}/clear", conversationHandler.HandleClearConversation)
			r.Put("/conversations/{conversationID}/system-prompt", conversationHandler.HandleSetSystemPrompt)
			r.Post("/conversations/{conversationID}/undo", generationHandler.HandleUndo)

			// --- Credits ---
			r.Get("/credits/balance", creditHandler.HandleGetBalance)
			r.Post("/credits/grant", creditHandler.HandleGrantCredits)

			// --- Models ---
			r.Get("/models", modelHandler.HandleListModels)
		})

		// The generation endpoint waits on a vendor round trip, so it carries
		// a longer timeout than the bookkeeping routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(5 * time.Minute))
			r.Post("/generate", generationHandler.HandleGenerate)
		})
	})

	return r
}
