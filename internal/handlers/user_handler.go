package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"users-api/internal/models"
	"users-api/internal/services"
	"users-api/internal/utils"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// maxBodyBytes matches the 100kb default limit of common JSON body parsers.
const maxBodyBytes = 100 << 10

const (
	msgBodyTooLarge  = "Request body too large"
	msgMissingFields = "Please provide name and bio for the user"
	msgInvalidBody   = "Invalid request body"
	msgNotFound      = "The user with the specified ID does not exist"
	msgListFailed    = "The users information could not be retrieved"
	msgGetFailed     = "The user information could not be retrieved"
	msgCreateFailed  = "There was an error while saving the user to the database"
	msgDeleteFailed  = "The user could not be removed"
	msgUpdateFailed  = "The user information could not be modified"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} models.MessageResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		utils.LogError("Error listing users: %v", err)
		models.RespondWithMessage(w, http.StatusInternalServerError, msgListFailed)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, users)
}

// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		models.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		utils.LogError("Error getting user %d: %v", id, err)
		models.RespondWithMessage(w, http.StatusInternalServerError, msgGetFailed)
		return
	}
	if user == nil {
		models.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, user)
}

// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UserInput true "Name and bio"
// @Success 201 {object} models.User
// @Failure 400 {object} models.MessageResponse
// @Failure 413 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeUserInput(w, r)
	if !ok {
		return
	}

	user, err := h.service.Create(r.Context(), in)
	if err != nil {
		utils.LogError("Error creating user: %v", err)
		models.RespondWithMessage(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}
	models.RespondWithJSON(w, http.StatusCreated, user)
}

// @Summary Delete a user
// @Description Removes the user and returns the deleted record
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		models.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	user, err := h.service.Delete(r.Context(), id)
	if err != nil {
		utils.LogError("Error deleting user %d: %v", id, err)
		models.RespondWithMessage(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}
	if user == nil {
		models.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, user)
}

// @Summary Update a user
// @Description Replaces name and bio of the user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.UserInput true "Name and bio"
// @Success 200 {object} models.User
// @Failure 400 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Failure 413 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeUserInput(w, r)
	if !ok {
		return
	}

	id, ok := userID(r)
	if !ok {
		models.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	user, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		utils.LogError("Error updating user %d: %v", id, err)
		models.RespondWithMessage(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}
	if user == nil {
		models.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, user)
}

// userID reports false for ids that can never match a stored row.
func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeUserInput writes the 400 or 413 response itself when it returns
// false. An empty body is treated as a body without fields.
func decodeUserInput(w http.ResponseWriter, r *http.Request) (models.UserInput, bool) {
	var in models.UserInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(&in)
	switch {
	case err == io.EOF:
		err = nil
	case err == nil:
		// Exactly one JSON value is allowed.
		if _, tokErr := dec.Token(); tokErr != io.EOF {
			err = errors.New("unexpected data after JSON body")
			if tokErr != nil {
				err = tokErr
			}
		}
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.LogWarning("User body over %d bytes rejected", tooLarge.Limit)
			models.RespondWithMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return in, false
		}
		utils.LogWarning("Error decoding user body: %v", err)
		models.RespondWithMessage(w, http.StatusBadRequest, msgInvalidBody)
		return in, false
	}
	if !in.Validate() {
		models.RespondWithMessage(w, http.StatusBadRequest, msgMissingFields)
		return in, false
	}
	return in, true
}
