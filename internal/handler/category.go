package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jrfournier/carttally/internal/model"
	"github.com/jrfournier/carttally/internal/store"
	"github.com/jrfournier/carttally/internal/websocket"
)

type CategoryHandler struct {
	categories *store.CategoryStore
	hub        *websocket.Hub
	logger     *slog.Logger
}

func NewCategoryHandler(cs *store.CategoryStore, hub *websocket.Hub, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: cs, hub: hub, logger: logger}
}

func (h *CategoryHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type categoryRequest struct {
	Name    string `json:"name"`
	Taxable bool   `json:"taxable"`
	Color   string `json:"color"`
	Icon    string `json:"icon"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		h.logger.Error("list categories", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list categories"})
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	existing, err := h.categories.GetByName(req.Name)
	if err != nil {
		h.logger.Error("get category by name", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check category name"})
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "category name already exists"})
		return
	}

	category, err := h.categories.Create(req.Name, req.Taxable, req.Color, req.Icon)
	if err != nil {
		h.logger.Error("create category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create category"})
		return
	}

	h.broadcast(websocket.NewMessage("category", "created", category.ID, nil))
	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.categories.GetByID(id)
	if err != nil {
		h.logger.Error("get category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get category"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	if req.Name != existing.Name {
		dup, err := h.categories.GetByName(req.Name)
		if err != nil {
			h.logger.Error("get category by name", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check category name"})
			return
		}
		if dup != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "category name already exists"})
			return
		}
	}

	category, err := h.categories.Update(id, req.Name, req.Taxable, req.Color, req.Icon)
	if err != nil {
		h.logger.Error("update category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update category"})
		return
	}

	h.broadcast(websocket.NewMessage("category", "updated", category.ID, nil))
	writeJSON(w, http.StatusOK, category)
}

// Delete removes a category. Items that referenced it keep their name
// snapshot and simply display as that name without category metadata.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.categories.Delete(id); err != nil {
		h.logger.Error("delete category", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete category"})
		return
	}

	h.broadcast(websocket.NewMessage("category", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
