package handle

import (
	"encoding/json"
	"net/http"

	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/ports/driver"
)

type AuthHandler struct {
	authService driver.IAuthService
	mylog       mylogger.Logger
}

func NewAuthHandler(authService driver.IAuthService, mylog mylogger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		mylog:       mylog,
	}
}

func (ah *AuthHandler) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.SignupRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		user, err := ah.authService.Signup(r.Context(), req)
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}

		JsonResponse(w, http.StatusCreated, map[string]interface{}{
			"message": "User created successfully!",
			"user":    user,
		})
	}
}

func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.LoginRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := ah.authService.Login(r.Context(), req)
		if err != nil {
			JsonError(w, statusOf(err), err)
			return
		}

		JsonResponse(w, http.StatusOK, res)
	}
}
