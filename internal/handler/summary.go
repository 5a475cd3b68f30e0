package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jrfournier/carttally/internal/currency"
	"github.com/jrfournier/carttally/internal/metrics"
	"github.com/jrfournier/carttally/internal/model"
	"github.com/jrfournier/carttally/internal/store"
	"github.com/jrfournier/carttally/internal/summary"
	"github.com/jrfournier/carttally/internal/tax"
)

type SummaryHandler struct {
	lists    *store.ListStore
	items    *store.ItemStore
	settings *store.SettingsStore
	logger   *slog.Logger
}

func NewSummaryHandler(ls *store.ListStore, is *store.ItemStore, ss *store.SettingsStore, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{lists: ls, items: is, settings: ss, logger: logger}
}

// summaryItem annotates an item with its taxability for the "+tax" badge and
// its extended price.
type summaryItem struct {
	model.Item
	Taxable          bool    `json:"taxable"`
	LineTotal        float64 `json:"line_total"`
	LineTotalDisplay string  `json:"line_total_display"`
}

type summaryResponse struct {
	summary.Summary

	Province       tax.Province `json:"province"`
	TaxDescription string       `json:"tax_description"`

	SubtotalDisplay string `json:"subtotal_display"`
	TaxDisplay      string `json:"tax_display"`
	TotalDisplay    string `json:"total_display"`

	Budget                *float64 `json:"budget"`
	BudgetDisplay         string   `json:"budget_display,omitempty"`
	BudgetVarianceDisplay string   `json:"budget_variance_display,omitempty"`
	OverBudget            bool     `json:"over_budget"`
	// OverageDisplay carries the absolute overage ("$3.97", never "$-3.97");
	// the sign belongs to the wording, not the number.
	OverageDisplay string `json:"overage_display,omitempty"`

	Items []summaryItem `json:"items"`
}

// Get computes the order summary for a list. The jurisdiction comes from the
// province query parameter when present, otherwise from the stored
// preference; either way an unrecognized code resolves to the default
// province rather than failing.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	code := r.URL.Query().Get("province")
	if code == "" {
		code, err = h.settings.Province()
		if err != nil {
			h.logger.Error("get province", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get province"})
			return
		}
	}
	regime := tax.Resolve(code)

	items, err := h.items.ListByList(id)
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list items"})
		return
	}

	s := summary.Summarize(items, regime, list.Budget)
	metrics.SummariesComputed.Inc()

	// Remember the viewed list; failure here never blocks the summary.
	if err := h.settings.Set(store.KeyLastList, strconv.FormatInt(id, 10)); err != nil {
		h.logger.Warn("save last list", "list_id", id, "error", err)
	}

	resp := summaryResponse{
		Summary:         s,
		Province:        regime.Code,
		TaxDescription:  regime.Description(),
		SubtotalDisplay: currency.Format(s.Subtotal),
		TaxDisplay:      currency.Format(s.TaxAmount),
		TotalDisplay:    currency.Format(s.Total),
		Budget:          list.Budget,
		Items:           make([]summaryItem, 0, len(items)),
	}

	if list.Budget != nil {
		resp.BudgetDisplay = currency.Format(*list.Budget)
	}
	if s.BudgetVariance != nil {
		resp.BudgetVarianceDisplay = currency.Format(*s.BudgetVariance)
		if s.OverBudget() {
			resp.OverBudget = true
			resp.OverageDisplay = currency.FormatAbs(*s.BudgetVariance)
		}
	}

	for _, item := range items {
		lineTotal := item.LineTotal()
		resp.Items = append(resp.Items, summaryItem{
			Item:             item,
			Taxable:          tax.IsTaxable(item.CategoryName()),
			LineTotal:        lineTotal,
			LineTotalDisplay: currency.Format(lineTotal),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
