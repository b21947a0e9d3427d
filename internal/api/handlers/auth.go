package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gigpay/gigpay-backend/internal/api/httpx"
	"github.com/gigpay/gigpay-backend/internal/api/validate"
	"github.com/gigpay/gigpay-backend/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
}

func NewAuthHandler(us *services.UserService) *AuthHandler {
	return &AuthHandler{Users: us}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "bad request")
		return
	}
	var errs validate.Errs
	for _, e := range []*validate.ErrField{
		validate.Required("username", req.Username),
		validate.Required("email", req.Email),
		validate.Required("password", req.Password),
		validate.Email("email", req.Email),
	} {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	if err := errs.OrNil(); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "user registered", u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "bad request")
		return
	}
	res, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "logged in", res)
}
