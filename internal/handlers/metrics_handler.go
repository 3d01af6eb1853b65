package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AzmainZaman/CSE470-Project/internal/models"
)

type MetricsHandler struct {
	BookCol *mongo.Collection
	UserCol *mongo.Collection
	Config  struct {
		LoanPeriodDays int
	}
}

// GET /admin/metrics
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. Catalog size
	totalBooks, _ := h.BookCol.CountDocuments(ctx, bson.M{})

	// 2. Registered users
	totalUsers, _ := h.UserCol.CountDocuments(ctx, bson.M{})

	// 3. Titles with at least one outstanding borrow
	borrowedTitles, _ := h.BookCol.CountDocuments(ctx, bson.M{
		"borrow_count": bson.M{"$gt": 0},
	})

	// 4. Outstanding and overdue borrow records, derived from the
	// user-owned lists
	now := time.Now()
	var outstanding, overdue int

	cursor, _ := h.UserCol.Find(ctx, bson.M{})
	var users []models.User
	_ = cursor.All(ctx, &users)

	for _, user := range users {
		outstanding += len(user.BorrowedBooks)
		for _, rec := range user.BorrowedBooks {
			if rec.IsOverdue(h.Config.LoanPeriodDays, now) {
				overdue++
			}
		}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_books":         totalBooks,
		"total_users":         totalUsers,
		"borrowed_titles":     borrowedTitles,
		"outstanding_borrows": outstanding,
		"overdue_borrows":     overdue,
	})
}
