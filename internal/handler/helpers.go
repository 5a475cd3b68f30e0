package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// roundToCents normalizes user-entered money to currency scale at the entry
// boundary. Aggregation never rounds; see internal/currency for display.
func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// validAmount rejects negative and non-finite monetary input before it can
// reach storage or the calculator.
func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
