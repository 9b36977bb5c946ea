package routes

import (
	"encoding/json"
	"net/http"

	"imprint/logger"
	"imprint/records"
	"imprint/utils"
)

// RecordQueryHandler looks up the persisted outcome of one render, either
// by record key or by the original request path and query.
func RecordQueryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		if request := r.URL.Query().Get("request"); request != "" {
			key = utils.CacheKey(request)
		}
	}
	if key == "" {
		http.Error(w, "key or request parameter required", http.StatusBadRequest)
		return
	}

	record, err := records.Get(key)
	if err != nil {
		logger.Errorf("Failed to query render record %s: %v", key, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if record == nil {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"key":    key,
			"status": "unknown",
		})
		return
	}
	json.NewEncoder(w).Encode(record)
}

// RecordListHandler lists all persisted render outcomes (admin endpoint)
func RecordListHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	list, err := records.List()
	if err != nil {
		logger.Errorf("Failed to list render records: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"records": list,
		"count":   len(list),
	})
}
