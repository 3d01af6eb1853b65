package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AzmainZaman/CSE470-Project/internal/constants"
	"github.com/AzmainZaman/CSE470-Project/internal/models"
	"github.com/AzmainZaman/CSE470-Project/internal/store"
	"github.com/AzmainZaman/CSE470-Project/internal/utils"
)

type AuthHandler struct {
	Users       *store.UserStore
	AuditLogger utils.Logger
}

func NewAuthHandler(users *store.UserStore, logger utils.Logger) *AuthHandler {
	return &AuthHandler{Users: users, AuditLogger: logger}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Photo    string `json:"photo"`
	Bio      string `json:"bio"`
	UserType string `json:"user_type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /register
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if req.Password == "" {
		utils.JSONError(w, "Password is required", http.StatusBadRequest)
		return
	}
	if req.UserType == "" {
		req.UserType = string(models.UserTypeUser)
	}
	if !models.IsValidUserType(req.UserType) {
		utils.JSONError(w, "Invalid user type", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := a.Users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		utils.JSONError(w, "Lookup failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if existing != nil {
		utils.JSONError(w, "A user with this email already exists", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Name:          req.Name,
		Email:         req.Email,
		Password:      string(hash),
		Phone:         req.Phone,
		Photo:         req.Photo,
		Bio:           req.Bio,
		UserType:      models.UserType(req.UserType),
		BorrowedBooks: []models.BorrowRecord{},
	}

	created, err := a.Users.CreateUser(ctx, user)
	if err != nil {
		utils.JSONError(w, "Register failed: "+err.Error(), storeErrorStatus(err))
		return
	}

	a.AuditLogger.Log(ctx, models.UserEntity, constants.Register, created.Email, created.Email)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// POST /login
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := a.Users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		utils.JSONError(w, "Lookup failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if user == nil {
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWT(user.Email)
	if err != nil {
		utils.JSONError(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	a.AuditLogger.Log(ctx, models.UserEntity, constants.Login, user.Email, user.Email)

	json.NewEncoder(w).Encode(LoginResponse{Token: token, User: *user})
}
