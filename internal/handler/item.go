package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrfournier/carttally/internal/model"
	"github.com/jrfournier/carttally/internal/store"
	"github.com/jrfournier/carttally/internal/websocket"
)

type ItemHandler struct {
	items    *store.ItemStore
	lists    *store.ListStore
	settings *store.SettingsStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewItemHandler(is *store.ItemStore, ls *store.ListStore, ss *store.SettingsStore, hub *websocket.Hub, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{items: is, lists: ls, settings: ss, hub: hub, logger: logger}
}

func (h *ItemHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

// rememberList records the last list the user touched. Failures are logged
// and ignored; this bookkeeping never blocks the actual edit.
func (h *ItemHandler) rememberList(listID int64) {
	if err := h.settings.Set(store.KeyLastList, strconv.FormatInt(listID, 10)); err != nil {
		h.logger.Warn("save last list", "list_id", listID, "error", err)
	}
}

type itemRequest struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Category  *string `json:"category"`
	Note      string  `json:"note"`
}

func (r *itemRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name is required"
	}
	if !validAmount(r.UnitPrice) {
		return "unit_price must be a non-negative amount"
	}
	r.UnitPrice = roundToCents(r.UnitPrice)
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	if r.Quantity < 1 || r.Quantity > 99 {
		return "quantity must be between 1 and 99"
	}
	// An empty category string means uncategorized.
	if r.Category != nil {
		trimmed := strings.TrimSpace(*r.Category)
		if trimmed == "" {
			r.Category = nil
		} else {
			r.Category = &trimmed
		}
	}
	return ""
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.ParseInt(r.PathValue("list_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid list_id"})
		return
	}

	list, err := h.lists.GetByID(listID)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get list"})
		return
	}
	if list == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	item, err := h.items.Create(listID, req.Name, req.UnitPrice, req.Quantity, req.Category, req.Note)
	if err != nil {
		h.logger.Error("create item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create item"})
		return
	}

	h.rememberList(listID)
	h.broadcast(websocket.NewMessage("item", "created", item.ID, map[string]any{"list_id": listID}))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) ListByList(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.ParseInt(r.PathValue("list_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid list_id"})
		return
	}

	items, err := h.items.ListByList(listID)
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list items"})
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.items.GetByID(id)
	if err != nil {
		h.logger.Error("get item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get item"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	item, err := h.items.Update(id, req.Name, req.UnitPrice, req.Quantity, req.Category, req.Note)
	if err != nil {
		h.logger.Error("update item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}

	h.rememberList(item.ListID)
	h.broadcast(websocket.NewMessage("item", "updated", item.ID, map[string]any{"list_id": item.ListID}))
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.items.Delete(id); err != nil {
		h.logger.Error("delete item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete item"})
		return
	}

	h.broadcast(websocket.NewMessage("item", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// TogglePurchased flips the purchased flag on an item.
func (h *ItemHandler) TogglePurchased(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	item, err := h.items.TogglePurchased(id)
	if err != nil {
		h.logger.Error("toggle purchased", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to toggle item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	h.rememberList(item.ListID)
	h.broadcast(websocket.NewMessage("item", "purchased", item.ID, map[string]any{
		"list_id":   item.ListID,
		"purchased": item.Purchased,
	}))
	writeJSON(w, http.StatusOK, item)
}

// ClearPurchased removes all purchased items from a list.
func (h *ItemHandler) ClearPurchased(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.ParseInt(r.PathValue("list_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid list_id"})
		return
	}

	count, err := h.items.ClearPurchased(listID)
	if err != nil {
		h.logger.Error("clear purchased", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to clear purchased items"})
		return
	}

	h.broadcast(websocket.NewMessage("item", "cleared", listID, map[string]any{"count": count}))
	writeJSON(w, http.StatusOK, map[string]int64{"cleared": count})
}
