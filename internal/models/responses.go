package models

import (
	"encoding/json"
	"net/http"
)

type MessageResponse struct {
	Message string `json:"message" example:"The user with the specified ID does not exist"`
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(body)
}

func RespondWithMessage(w http.ResponseWriter, statusCode int, message string) error {
	return RespondWithJSON(w, statusCode, &MessageResponse{Message: message})
}
