package handlers

import (
	"encoding/json"
	"net/http"
)

func ApiInfoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	response := map[string]interface{}{
		"message": "Exertrack API v0.1.0",
		"endpoints": map[string]string{
			"register user":   "POST /api/users",
			"list users":      "GET /api/users",
			"record exercise": "POST /api/users/{id}/exercises",
			"exercise log":    "GET /api/users/{id}/logs",
		},
	}
	json.NewEncoder(w).Encode(response)
}
