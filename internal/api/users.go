package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"avialog/backend/internal/auth"
	"avialog/backend/internal/models/dtos"
	"avialog/backend/internal/services"
)

// RegisterHandler godoc
// @Summary      Create an account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  dtos.APIResponse[dtos.AuthResponse]
// @Failure      400,409  {object}  dtos.APIResponse[any]
// @Router       /auth/register [post]
func RegisterHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		resp, err := userSvc.Register(r.Context(), &req)
		if errors.Is(err, services.ErrEmailTaken) {
			respondWithError(w, http.StatusConflict, "Email already registered")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusCreated, resp)
	}
}

func LoginHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		resp, err := userSvc.Login(r.Context(), &req)
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, resp)
	}
}

func LogoutHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := userSvc.Logout(r.Context(), r.Header.Get("X-Session-Id")); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// UserDetailsHandler returns the authenticated user's profile with the
// denormalized flight totals.
func UserDetailsHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		resp, err := userSvc.GetDetails(r.Context(), claims.UserID())
		if services.IsNotFound(err) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, resp)
	}
}

// CompareUsersHandler godoc
// @Summary      Compare flight stats across users
// @Description  Returns the requester's stats next to the users named in the
//               comma-separated "users" parameter. Unknown ids are dropped.
// @Tags         Users
// @Produce      json
// @Param        users  query  string  true  "Comma-separated user ids"
// @Success      200  {object}  dtos.APIResponse[dtos.CompareResponse]
// @Failure      400,404  {object}  dtos.APIResponse[any]
// @Router       /api/v1/users/compare [get]
func CompareUsersHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		raw := r.URL.Query().Get("users")
		if raw == "" {
			respondWithError(w, http.StatusBadRequest, "Missing 'users' parameter")
			return
		}

		var ids []string
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}

		resp, err := userSvc.Compare(r.Context(), claims.UserID(), ids)
		if services.IsNotFound(err) {
			respondWithError(w, http.StatusNotFound, "No users found to compare")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, resp)
	}
}
