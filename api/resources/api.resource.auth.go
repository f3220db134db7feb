package resources

import (
	"net/http"

	"github.com/ikigain/ForestOS/internal/careservice"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
)

// AuthHandlers encapsulates registration and login
type AuthHandlers struct {
	service *careservice.CareService
}

// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserCreate true "Account details"
// @Success 201 {object} models.User
// @Failure 422 {object} errors.APIError
// @Router /auth/register [post]
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var in models.UserCreate
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, r, err)
		return
	}
	user, err := h.service.Register(r.Context(), &in)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

// @Summary Log in with the OAuth2 password form
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} models.Token
// @Failure 401 {object} errors.APIError
// @Router /auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, r, errors.NewValidationError("invalid form body", err))
		return
	}
	var form models.LoginForm
	if err := decodeValues(r.PostForm, &form); err != nil {
		respondWithError(w, r, err)
		return
	}
	if form.Username == "" || form.Password == "" {
		respondWithError(w, r, errors.NewValidationError("username and password are required", nil))
		return
	}
	token, err := h.service.Login(r.Context(), &form)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, token)
}

// @Summary Check an access token
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} errors.APIError
// @Router /auth/test-token [post]
// @Security BearerAuth
func (h *AuthHandlers) TestToken(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CurrentUser(r.Context(), principal(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}
