package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gigpay/gigpay-backend/internal/api/httpx"
	"github.com/gigpay/gigpay-backend/internal/models"
	"github.com/gigpay/gigpay-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type GigsHandler struct {
	Gigs *services.GigService
}

func NewGigsHandler(gs *services.GigService) *GigsHandler {
	return &GigsHandler{Gigs: gs}
}

type gigReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	UserID      string `json:"user_id"`
}

func (h *GigsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req gigReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "bad request")
		return
	}
	g, err := h.Gigs.Create(r.Context(), models.Gig{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		UserID:      req.UserID,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "gig created", g)
}

// Get accepts the id as a path param or an ?id= query param.
func (h *GigsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "id required")
		return
	}
	g, err := h.Gigs.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", g)
}

func (h *GigsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	gigs, err := h.Gigs.List(r.Context(), limit, offset)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", gigs)
}

func (h *GigsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req gigReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "bad request")
		return
	}
	g, err := h.Gigs.Update(r.Context(), models.Gig{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "gig updated", g)
}

func (h *GigsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Gigs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "gig deleted", nil)
}
