package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jrfournier/carttally/internal/store"
	"github.com/jrfournier/carttally/internal/tax"
	"github.com/jrfournier/carttally/internal/websocket"
)

type SettingsHandler struct {
	settings *store.SettingsStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewSettingsHandler(ss *store.SettingsStore, hub *websocket.Hub, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: ss, hub: hub, logger: logger}
}

func (h *SettingsHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type provinceResponse struct {
	Province       tax.Province `json:"province"`
	Name           string       `json:"name"`
	TaxDescription string       `json:"tax_description"`
}

// GetProvince returns the selected tax jurisdiction. A missing or
// unrecognized stored value resolves to the default province; the user never
// sees an error for a bad preference.
func (h *SettingsHandler) GetProvince(w http.ResponseWriter, r *http.Request) {
	code, err := h.settings.Province()
	if err != nil {
		h.logger.Error("get province", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get province"})
		return
	}

	regime := tax.Resolve(code)
	writeJSON(w, http.StatusOK, provinceResponse{
		Province:       regime.Code,
		Name:           regime.Name,
		TaxDescription: regime.Description(),
	})
}

func (h *SettingsHandler) UpdateProvince(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Province string `json:"province"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	regime, err := tax.RateFor(strings.ToUpper(strings.TrimSpace(req.Province)))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown province"})
		return
	}

	if err := h.settings.SetProvince(string(regime.Code)); err != nil {
		h.logger.Error("set province", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save province"})
		return
	}

	h.broadcast(websocket.NewMessage("settings", "updated", 0, map[string]any{"province": regime.Code}))
	writeJSON(w, http.StatusOK, provinceResponse{
		Province:       regime.Code,
		Name:           regime.Name,
		TaxDescription: regime.Description(),
	})
}

type regimeResponse struct {
	Code        tax.Province `json:"code"`
	Name        string       `json:"name"`
	GST         float64      `json:"gst"`
	PST         float64      `json:"pst"`
	HST         float64      `json:"hst"`
	TotalRate   float64      `json:"total_rate"`
	Description string       `json:"description"`
}

// ListRegimes returns the fixed province table for the jurisdiction picker.
func (h *SettingsHandler) ListRegimes(w http.ResponseWriter, r *http.Request) {
	regimes := tax.Regimes()
	out := make([]regimeResponse, 0, len(regimes))
	for _, reg := range regimes {
		out = append(out, regimeResponse{
			Code:        reg.Code,
			Name:        reg.Name,
			GST:         reg.GSTRate(),
			PST:         reg.PSTRate(),
			HST:         reg.HSTRate(),
			TotalRate:   reg.TotalRate(),
			Description: reg.Description(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListExemptions returns the fixed exempt category-name set so the UI can
// explain why an item carries no "+tax" badge.
func (h *SettingsHandler) ListExemptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"exempt": tax.ExemptNames()})
}

type pinRequest struct {
	PIN string `json:"pin"`
}

// SetPIN stores a bcrypt hash of an optional access PIN.
func (h *SettingsHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if len(req.PIN) < 4 || len(req.PIN) > 8 || !isDigits(req.PIN) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "PIN must be 4-8 digits"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash pin", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set PIN"})
		return
	}

	if err := h.settings.Set(store.KeyPINHash, string(hash)); err != nil {
		h.logger.Error("save pin", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set PIN"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "set"})
}

// VerifyPIN checks a PIN attempt against the stored hash. The route is
// rate-limited per client IP.
func (h *SettingsHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	hash, err := h.settings.Get(store.KeyPINHash)
	if err != nil {
		h.logger.Error("get pin hash", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to verify PIN"})
		return
	}
	if hash == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no PIN set"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.PIN)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "incorrect PIN"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

func (h *SettingsHandler) ClearPIN(w http.ResponseWriter, r *http.Request) {
	if err := h.settings.Delete(store.KeyPINHash); err != nil {
		h.logger.Error("clear pin", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to clear PIN"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
