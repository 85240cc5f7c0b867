package api

import (
	"net/http"

	"github.com/rileyblackwell/imagi-oasis/internal/registry"
)

// ModelHandler handles HTTP requests for the supported-model catalog.
type ModelHandler struct{}

func NewModelHandler() *ModelHandler {
	return &ModelHandler{}
}

// ModelListResponse wraps the supported-model catalog.
type ModelListResponse struct {
	Models []registry.ModelDefinition `json:"models"`
}

// HandleListModels godoc
// @Summary      List supported models
// @Description  Returns the catalog of supported models with their vendor and per-request credit cost.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  ModelListResponse
// @Router       /v1/models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ModelListResponse{Models: registry.List()})
}
