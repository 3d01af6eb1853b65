package borrow_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzmainZaman/CSE470-Project/internal/borrow"
	"github.com/AzmainZaman/CSE470-Project/internal/models"
)

// stubUserWriter records what was written and can be told to fail.
type stubUserWriter struct {
	err     error
	email   string
	written []models.BorrowRecord
	calls   int
}

func (s *stubUserWriter) UpdateBorrowedBooks(_ context.Context, email string, records []models.BorrowRecord) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.email = email
	s.written = records
	return nil
}

type stubBookWriter struct {
	err    error
	bookID string
	count  int
	calls  int
}

func (s *stubBookWriter) UpdateBorrowCount(_ context.Context, id string, count int) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.bookID = id
	s.count = count
	return nil
}

func newSession(records []models.BorrowRecord, book *models.Book) *borrow.Session {
	return &borrow.Session{
		User: &models.User{
			Name:          "Test User",
			Email:         "u1@example.com",
			UserType:      models.UserTypeUser,
			BorrowedBooks: records,
		},
		SelectedBook: book,
	}
}

func TestService_Borrow_Commits(t *testing.T) {
	users := &stubUserWriter{}
	books := &stubBookWriter{}
	svc := borrow.NewService(users, books, 3, 7)

	book := &models.Book{ID: "B1", Title: "Dune", Author: "Herbert", BorrowCount: 2}
	sess := newSession(nil, book)

	outcome, err := svc.Borrow(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, borrow.StateCommitted, outcome.State)
	require.Len(t, outcome.BorrowedBooks, 1)
	assert.Equal(t, "B1", outcome.BorrowedBooks[0].BookID)
	assert.Equal(t, time.Now().Format(models.BorrowDateLayout), outcome.BorrowedBooks[0].BorrowedDate)

	// Both stores were written once each.
	assert.Equal(t, "u1@example.com", users.email)
	assert.Equal(t, 1, users.calls)
	assert.Equal(t, "B1", books.bookID)
	assert.Equal(t, 3, books.count)

	// Session state follows the committed transition.
	assert.Len(t, sess.User.BorrowedBooks, 1)
	assert.Equal(t, 3, sess.SelectedBook.BorrowCount)
}

func TestService_Borrow_Preconditions(t *testing.T) {
	book := &models.Book{ID: "B1", Title: "Dune"}

	held := []models.BorrowRecord{
		{BookID: "B2", BorrowedDate: "6/1/2026"},
		{BookID: "B3", BorrowedDate: "6/2/2026"},
		{BookID: "B4", BorrowedDate: "6/3/2026"},
	}

	tests := []struct {
		name    string
		sess    *borrow.Session
		wantErr error
	}{
		{"Nil Session", nil, borrow.ErrNotAuthenticated},
		{"No User", &borrow.Session{SelectedBook: book}, borrow.ErrNotAuthenticated},
		{"No Book Selected", newSession(nil, nil), borrow.ErrNoBookSelected},
		{"Limit Reached", newSession(held, book), borrow.ErrBorrowLimit},
		{"Already Borrowed", newSession([]models.BorrowRecord{{BookID: "B1"}}, book), borrow.ErrAlreadyBorrowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &stubUserWriter{}
			books := &stubBookWriter{}
			svc := borrow.NewService(users, books, 3, 7)

			outcome, err := svc.Borrow(context.Background(), tt.sess)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, borrow.StatePending, outcome.State)

			// A failed precondition never reaches the stores.
			assert.Zero(t, users.calls)
			assert.Zero(t, books.calls)
		})
	}
}

func TestService_Borrow_UserWriteFails(t *testing.T) {
	writeErr := errors.New("store unavailable")
	users := &stubUserWriter{err: writeErr}
	books := &stubBookWriter{}
	svc := borrow.NewService(users, books, 3, 7)

	book := &models.Book{ID: "B1", Title: "Dune"}
	sess := newSession(nil, book)

	outcome, err := svc.Borrow(context.Background(), sess)
	assert.ErrorIs(t, err, writeErr)
	assert.Equal(t, borrow.StateRolledBack, outcome.State)
	assert.Empty(t, outcome.BorrowedBooks)

	// Local list reverted, book write never attempted.
	assert.Empty(t, sess.User.BorrowedBooks)
	assert.Zero(t, books.calls)
	assert.Equal(t, 0, sess.SelectedBook.BorrowCount)
}

func TestService_Borrow_BookWriteFails(t *testing.T) {
	writeErr := errors.New("store unavailable")
	users := &stubUserWriter{}
	books := &stubBookWriter{err: writeErr}
	svc := borrow.NewService(users, books, 3, 7)

	book := &models.Book{ID: "B1", Title: "Dune"}
	sess := newSession(nil, book)

	outcome, err := svc.Borrow(context.Background(), sess)
	assert.ErrorIs(t, err, writeErr)
	assert.Equal(t, borrow.StateRolledBack, outcome.State)

	// The user write already went through; only local state reverts.
	assert.Equal(t, 1, users.calls)
	assert.Empty(t, sess.User.BorrowedBooks)
	assert.Equal(t, 0, sess.SelectedBook.BorrowCount)
}

func TestService_Return_Commits(t *testing.T) {
	users := &stubUserWriter{}
	books := &stubBookWriter{}
	svc := borrow.NewService(users, books, 3, 7)

	book := &models.Book{ID: "B1", Title: "Dune", BorrowCount: 1}
	held := []models.BorrowRecord{{BookID: "B1", BorrowedDate: "6/3/2026", Title: "Dune"}}
	sess := newSession(held, book)

	outcome, err := svc.Return(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, borrow.StateCommitted, outcome.State)
	assert.Empty(t, outcome.BorrowedBooks)
	assert.Equal(t, 0, books.count)
	assert.Equal(t, 0, sess.SelectedBook.BorrowCount)
	assert.Empty(t, sess.User.BorrowedBooks)
}

func TestService_Return_CountFlooredAtZero(t *testing.T) {
	users := &stubUserWriter{}
	books := &stubBookWriter{}
	svc := borrow.NewService(users, books, 3, 7)

	// Counter already at zero despite an outstanding record.
	book := &models.Book{ID: "B1", BorrowCount: 0}
	sess := newSession([]models.BorrowRecord{{BookID: "B1"}}, book)

	outcome, err := svc.Return(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, borrow.StateCommitted, outcome.State)
	assert.Equal(t, 0, books.count)
}

func TestService_Return_NotBorrowed(t *testing.T) {
	users := &stubUserWriter{}
	books := &stubBookWriter{}
	svc := borrow.NewService(users, books, 3, 7)

	book := &models.Book{ID: "B9"}
	sess := newSession([]models.BorrowRecord{{BookID: "B1"}}, book)

	outcome, err := svc.Return(context.Background(), sess)
	assert.ErrorIs(t, err, borrow.ErrNotBorrowed)
	assert.Equal(t, borrow.StatePending, outcome.State)
	assert.Zero(t, users.calls)
	assert.Zero(t, books.calls)
}

func TestService_Return_UserWriteFails(t *testing.T) {
	writeErr := errors.New("store unavailable")
	users := &stubUserWriter{err: writeErr}
	books := &stubBookWriter{}
	svc := borrow.NewService(users, books, 3, 7)

	book := &models.Book{ID: "B1", BorrowCount: 1}
	held := []models.BorrowRecord{{BookID: "B1", BorrowedDate: "6/3/2026"}}
	sess := newSession(held, book)

	outcome, err := svc.Return(context.Background(), sess)
	assert.ErrorIs(t, err, writeErr)
	assert.Equal(t, borrow.StateRolledBack, outcome.State)
	assert.Len(t, sess.User.BorrowedBooks, 1)
	assert.Equal(t, 1, sess.SelectedBook.BorrowCount)
	assert.Zero(t, books.calls)
}

func TestService_BorrowThenReturn_RoundTrip(t *testing.T) {
	users := &stubUserWriter{}
	books := &stubBookWriter{}
	svc := borrow.NewService(users, books, 3, 7)

	book := &models.Book{ID: "B1", Title: "Dune", BorrowCount: 0}
	sess := newSession(nil, book)

	outcome, err := svc.Borrow(context.Background(), sess)
	require.NoError(t, err)
	require.Equal(t, borrow.StateCommitted, outcome.State)
	require.Len(t, sess.User.BorrowedBooks, 1)
	require.Equal(t, 1, sess.SelectedBook.BorrowCount)

	outcome, err = svc.Return(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, borrow.StateCommitted, outcome.State)
	assert.Empty(t, sess.User.BorrowedBooks)
	assert.Equal(t, 0, sess.SelectedBook.BorrowCount)
}
