package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AzmainZaman/CSE470-Project/internal/borrow"
	"github.com/AzmainZaman/CSE470-Project/internal/constants"
	"github.com/AzmainZaman/CSE470-Project/internal/middleware"
	"github.com/AzmainZaman/CSE470-Project/internal/models"
	"github.com/AzmainZaman/CSE470-Project/internal/store"
	"github.com/AzmainZaman/CSE470-Project/internal/utils"
)

type BorrowHandler struct {
	Users       *store.UserStore
	Books       *store.BookStore
	Service     *borrow.Service
	AuditLogger utils.Logger
}

type BorrowRequest struct {
	BookID string `json:"book_id"`
}

// BorrowedBookView is a BorrowRecord plus its derived due date.
type BorrowedBookView struct {
	models.BorrowRecord
	DueDate string `json:"due_date,omitempty"`
}

func (h *BorrowHandler) buildSession(w http.ResponseWriter, r *http.Request, bookID string) *borrow.Session {
	email := middleware.UserEmail(r.Context())
	if email == "" {
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}

	user, err := h.Users.FindUserByEmail(r.Context(), email)
	if err != nil {
		utils.JSONError(w, "Lookup failed: "+err.Error(), http.StatusInternalServerError)
		return nil
	}
	if user == nil {
		utils.JSONError(w, "User not found", http.StatusNotFound)
		return nil
	}

	book, err := h.Books.FindBookByID(r.Context(), bookID)
	if err != nil {
		utils.JSONError(w, "Lookup failed: "+err.Error(), http.StatusInternalServerError)
		return nil
	}
	if book == nil {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return nil
	}

	return &borrow.Session{User: user, SelectedBook: book}
}

func transitionErrorStatus(err error) int {
	switch {
	case errors.Is(err, borrow.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, borrow.ErrNoBookSelected):
		return http.StatusBadRequest
	case errors.Is(err, borrow.ErrBorrowLimit),
		errors.Is(err, borrow.ErrAlreadyBorrowed),
		errors.Is(err, borrow.ErrNotBorrowed):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// POST /borrow
func (h *BorrowHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req BorrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid input", http.StatusBadRequest)
		return
	}

	sess := h.buildSession(w, r, req.BookID)
	if sess == nil {
		return
	}

	outcome, err := h.Service.Borrow(r.Context(), sess)
	if err != nil {
		utils.JSONError(w, err.Error(), transitionErrorStatus(err))
		return
	}

	h.AuditLogger.Log(r.Context(), models.BorrowEntity, constants.Borrow, sess.User.Email, req.BookID)

	json.NewEncoder(w).Encode(outcome)
}

// POST /return
func (h *BorrowHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req BorrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid input", http.StatusBadRequest)
		return
	}

	sess := h.buildSession(w, r, req.BookID)
	if sess == nil {
		return
	}

	outcome, err := h.Service.Return(r.Context(), sess)
	if err != nil {
		utils.JSONError(w, err.Error(), transitionErrorStatus(err))
		return
	}

	h.AuditLogger.Log(r.Context(), models.BorrowEntity, constants.Return, sess.User.Email, req.BookID)

	json.NewEncoder(w).Encode(outcome)
}

// GET /borrowed
func (h *BorrowHandler) GetBorrowedBooks(w http.ResponseWriter, r *http.Request) {
	email := middleware.UserEmail(r.Context())
	if email == "" {
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Users.FindUserByEmail(r.Context(), email)
	if err != nil {
		utils.JSONError(w, "Lookup failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if user == nil {
		utils.JSONError(w, "User not found", http.StatusNotFound)
		return
	}

	views := make([]BorrowedBookView, 0, len(user.BorrowedBooks))
	for _, rec := range user.BorrowedBooks {
		view := BorrowedBookView{BorrowRecord: rec}
		if due, err := rec.DueDate(h.Service.LoanPeriodDays); err == nil {
			view.DueDate = due.Format(models.BorrowDateLayout)
		}
		views = append(views, view)
	}

	json.NewEncoder(w).Encode(views)
}
