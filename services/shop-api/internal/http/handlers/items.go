package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"purem-oda-shop/services/shop-api/internal/service"
	"purem-oda-shop/shared/pkg/models"
)

type ItemsService interface {
	List(ctx context.Context) []models.Item
	Create(ctx context.Context, title, description string) (models.Item, error)
	Update(ctx context.Context, id int64, in service.UpdateItemInput) (models.Item, error)
}

type ItemsHandler struct {
	Svc ItemsService
	Log zerolog.Logger
}

// createItemReq accepts any JSON type; non-string values are stored as
// their JSON text.
type createItemReq struct {
	Title       json.RawMessage `json:"title"`
	Description json.RawMessage `json:"description"`
}

type updateItemReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// List handles GET /api/items
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Svc.List(r.Context()))
}

// Create handles POST /api/items
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemReq
	if err := decodeOptional(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	it, err := h.Svc.Create(r.Context(), fieldText(req.Title), fieldText(req.Description))
	if err != nil {
		h.Log.Error().Err(err).Msg("create item failed")
		writeErr(w, http.StatusInternalServerError, "failed to create item")
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

// Update handles PUT /api/items/{id}
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	// a non-numeric id can never match, so it is reported like a missing one
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeErr(w, http.StatusNotFound, "Item not found")
		return
	}

	var req updateItemReq
	if err := decodeOptional(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	it, err := h.Svc.Update(r.Context(), id, service.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "Item not found")
			return
		}
		h.Log.Error().Err(err).Int64("id", id).Msg("update item failed")
		writeErr(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	writeJSON(w, http.StatusOK, it)
}
