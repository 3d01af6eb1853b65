package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/AzmainZaman/CSE470-Project/internal/constants"
	"github.com/AzmainZaman/CSE470-Project/internal/middleware"
	"github.com/AzmainZaman/CSE470-Project/internal/models"
	"github.com/AzmainZaman/CSE470-Project/internal/store"
	"github.com/AzmainZaman/CSE470-Project/internal/utils"
)

type BookHandler struct {
	Books       *store.BookStore
	AuditLogger utils.Logger
}

func NewBookHandler(books *store.BookStore, logger utils.Logger) *BookHandler {
	return &BookHandler{Books: books, AuditLogger: logger}
}

// POST /books
//
// The inventory entry form rejects a book whose id or title is already
// in the loaded list before anything is written.
func (h *BookHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		utils.JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := h.Books.GetAllBooks(ctx)
	if err != nil {
		utils.JSONError(w, "Failed to fetch books: "+err.Error(), http.StatusInternalServerError)
		return
	}
	for _, b := range existing {
		if b.ID == book.ID || b.Title == book.Title {
			utils.JSONError(w, "A book with this ID or title already exists", http.StatusConflict)
			return
		}
	}

	created, err := h.Books.CreateBook(ctx, book)
	if err != nil {
		utils.JSONError(w, "Insert failed: "+err.Error(), storeErrorStatus(err))
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Create, middleware.UserEmail(r.Context()), created)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GET /books
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	books, err := h.Books.GetAllBooks(ctx)
	if err != nil {
		utils.JSONError(w, "Failed to fetch books", http.StatusInternalServerError)
		return
	}

	if len(books) == 0 {
		utils.JSONError(w, "No books found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(books)
}

// GET /books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	book, err := h.Books.FindBookByID(ctx, id)
	if err != nil {
		utils.JSONError(w, "Failed to fetch book", http.StatusInternalServerError)
		return
	}
	if book == nil {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(book)
}

// GET /books/search?q=
func (h *BookHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := h.Books.SearchBooks(ctx, query)
	if err != nil {
		utils.JSONError(w, "Failed to search books: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if len(results) == 0 {
		utils.JSONError(w, "No record found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(results)
}

// PUT /books/{id}
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var book models.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Books.UpdateBook(ctx, id, book); err != nil {
		utils.JSONError(w, "Update failed: "+err.Error(), storeErrorStatus(err))
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Update, middleware.UserEmail(r.Context()), book)

	json.NewEncoder(w).Encode(map[string]string{"message": "Book updated successfully"})
}

// PATCH /books/{id}/photo
func (h *BookHandler) ChangeBookPhoto(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Photo string `json:"photo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Books.ChangeBookPhoto(ctx, id, req.Photo); err != nil {
		utils.JSONError(w, "Update failed: "+err.Error(), storeErrorStatus(err))
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Update, middleware.UserEmail(r.Context()), req.Photo)

	json.NewEncoder(w).Encode(map[string]string{"message": "Book photo updated"})
}

// DELETE /books/{id}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Books.DeleteBook(ctx, id); err != nil {
		utils.JSONError(w, "Delete failed: "+err.Error(), storeErrorStatus(err))
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Delete, middleware.UserEmail(r.Context()), id)

	w.WriteHeader(http.StatusNoContent)
}
