package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AzmainZaman/CSE470-Project/internal/constants"
	"github.com/AzmainZaman/CSE470-Project/internal/middleware"
	"github.com/AzmainZaman/CSE470-Project/internal/models"
	"github.com/AzmainZaman/CSE470-Project/internal/store"
	"github.com/AzmainZaman/CSE470-Project/internal/utils"
)

type UserHandler struct {
	Users       *store.UserStore
	AuditLogger utils.Logger
}

func NewUserHandler(users *store.UserStore, logger utils.Logger) *UserHandler {
	return &UserHandler{Users: users, AuditLogger: logger}
}

// GET /profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	email := middleware.UserEmail(r.Context())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := h.Users.FindUserByEmail(ctx, email)
	if err != nil {
		utils.JSONError(w, "Lookup failed", http.StatusInternalServerError)
		return
	}
	if user == nil {
		utils.JSONError(w, "User not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(user)
}

// PATCH /profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := middleware.UserEmail(r.Context())

	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Bio   string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateUserProfile(ctx, email, req.Name, req.Phone, req.Bio); err != nil {
		utils.JSONError(w, "Update failed: "+err.Error(), storeErrorStatus(err))
		return
	}

	h.AuditLogger.Log(ctx, models.UserEntity, constants.Update, email, req)

	json.NewEncoder(w).Encode(map[string]string{"message": "Profile updated"})
}

// PATCH /profile/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	email := middleware.UserEmail(r.Context())

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		utils.JSONError(w, "Password is required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Users.ChangePassword(ctx, email, string(hash)); err != nil {
		utils.JSONError(w, "Update failed: "+err.Error(), storeErrorStatus(err))
		return
	}

	h.AuditLogger.Log(ctx, models.UserEntity, constants.ChangePassword, email, email)

	json.NewEncoder(w).Encode(map[string]string{"message": "Password changed"})
}

// PATCH /profile/photo
func (h *UserHandler) ChangePhoto(w http.ResponseWriter, r *http.Request) {
	email := middleware.UserEmail(r.Context())

	var req struct {
		Photo string `json:"photo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Users.ChangePhoto(ctx, email, req.Photo); err != nil {
		utils.JSONError(w, "Update failed: "+err.Error(), storeErrorStatus(err))
		return
	}

	h.AuditLogger.Log(ctx, models.UserEntity, constants.ChangePhoto, email, req.Photo)

	json.NewEncoder(w).Encode(map[string]string{"message": "Photo changed"})
}
