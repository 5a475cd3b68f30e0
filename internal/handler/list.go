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

type ListHandler struct {
	lists  *store.ListStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewListHandler(ls *store.ListStore, hub *websocket.Hub, logger *slog.Logger) *ListHandler {
	return &ListHandler{lists: ls, hub: hub, logger: logger}
}

func (h *ListHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

// listRequest carries a nullable budget: absent or null means "no budget",
// which is distinct from an explicit zero-dollar budget.
type listRequest struct {
	Name   string   `json:"name"`
	Budget *float64 `json:"budget"`
}

func (r *listRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name is required"
	}
	if r.Budget != nil {
		if !validAmount(*r.Budget) {
			return "budget must be a non-negative amount"
		}
		*r.Budget = roundToCents(*r.Budget)
	}
	return ""
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	list, err := h.lists.Create(req.Name, req.Budget)
	if err != nil {
		h.logger.Error("create list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create list"})
		return
	}

	h.broadcast(websocket.NewMessage("list", "created", list.ID, nil))
	writeJSON(w, http.StatusCreated, list)
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.List()
	if err != nil {
		h.logger.Error("list lists", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list lists"})
		return
	}
	if lists == nil {
		lists = []model.List{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	list, err := h.lists.GetByID(id)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get list"})
		return
	}
	if list == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.lists.GetByID(id)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get list"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	list, err := h.lists.Update(id, req.Name, req.Budget)
	if err != nil {
		h.logger.Error("update list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update list"})
		return
	}

	h.broadcast(websocket.NewMessage("list", "updated", list.ID, nil))
	writeJSON(w, http.StatusOK, list)
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.lists.Delete(id); err != nil {
		h.logger.Error("delete list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete list"})
		return
	}

	h.broadcast(websocket.NewMessage("list", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
