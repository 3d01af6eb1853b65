// Package borrow holds the borrow/return state transitions. A transition
// touches two documents through two independent writes: the user's
// borrowed list and the book's borrow counter. The second write is not
// rolled back server-side when the first one already landed; only the
// session's local list is reverted.
package borrow

import (
	"context"
	"errors"
	"time"

	"github.com/AzmainZaman/CSE470-Project/internal/models"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoBookSelected   = errors.New("no book selected")
	ErrBorrowLimit      = errors.New("borrow limit reached")
	ErrAlreadyBorrowed  = errors.New("book already borrowed")
	ErrNotBorrowed      = errors.New("book not in borrowed list")
)

// UserWriter is the slice of the user store a transition needs.
type UserWriter interface {
	UpdateBorrowedBooks(ctx context.Context, email string, records []models.BorrowRecord) error
}

// BookWriter is the slice of the book store a transition needs.
type BookWriter interface {
	UpdateBorrowCount(ctx context.Context, id string, count int) error
}

type OutcomeState string

const (
	StatePending    OutcomeState = "PENDING"
	StateCommitted  OutcomeState = "COMMITTED"
	StateRolledBack OutcomeState = "ROLLED_BACK"
)

// Outcome reports how far a transition got. BorrowedBooks is the
// session's list after the transition: the new list when committed, the
// pre-transition list when rolled back.
type Outcome struct {
	State         OutcomeState         `json:"state"`
	BorrowedBooks []models.BorrowRecord `json:"borrowed_books"`
}

// Session replaces the ambient auth/selected-book context of the UI: the
// authenticated user plus the book the action targets. The workflow
// reads and locally mutates it but never owns persistence of the user.
type Session struct {
	User         *models.User
	SelectedBook *models.Book
}

type Service struct {
	Users            UserWriter
	Books            BookWriter
	MaxBorrowedBooks int
	LoanPeriodDays   int
}

func NewService(users UserWriter, books BookWriter, maxBorrowed, loanDays int) *Service {
	if maxBorrowed <= 0 {
		maxBorrowed = 3
	}
	if loanDays <= 0 {
		loanDays = 7
	}
	return &Service{
		Users:            users,
		Books:            books,
		MaxBorrowedBooks: maxBorrowed,
		LoanPeriodDays:   loanDays,
	}
}

func (s *Service) checkSession(sess *Session) error {
	if sess == nil || sess.User == nil {
		return ErrNotAuthenticated
	}
	if sess.SelectedBook == nil {
		return ErrNoBookSelected
	}
	return nil
}

// Borrow appends a record for the selected book and issues the two
// writes. Either write failing reverts the session's local list and
// returns the error with a RolledBack outcome.
func (s *Service) Borrow(ctx context.Context, sess *Session) (Outcome, error) {
	if err := s.checkSession(sess); err != nil {
		return Outcome{State: StatePending}, err
	}

	user := sess.User
	book := sess.SelectedBook

	if len(user.BorrowedBooks) >= s.MaxBorrowedBooks {
		return Outcome{State: StatePending, BorrowedBooks: user.BorrowedBooks}, ErrBorrowLimit
	}
	if models.HasBorrowed(user.BorrowedBooks, book.ID) {
		return Outcome{State: StatePending, BorrowedBooks: user.BorrowedBooks}, ErrAlreadyBorrowed
	}

	previous := user.BorrowedBooks
	record := models.NewBorrowRecord(*book, time.Now())
	next := make([]models.BorrowRecord, len(previous), len(previous)+1)
	copy(next, previous)
	next = append(next, record)

	// Optimistic local update, reverted below on any write failure.
	user.BorrowedBooks = next

	if err := s.Users.UpdateBorrowedBooks(ctx, user.Email, next); err != nil {
		user.BorrowedBooks = previous
		return Outcome{State: StateRolledBack, BorrowedBooks: previous}, err
	}
	if err := s.Books.UpdateBorrowCount(ctx, book.ID, book.BorrowCount+1); err != nil {
		// The user write already landed; the stores are now out of step.
		user.BorrowedBooks = previous
		return Outcome{State: StateRolledBack, BorrowedBooks: previous}, err
	}

	book.BorrowCount++
	return Outcome{State: StateCommitted, BorrowedBooks: next}, nil
}

// Return removes the record for the selected book and issues the
// symmetric writes, with the borrow counter floored at 0.
func (s *Service) Return(ctx context.Context, sess *Session) (Outcome, error) {
	if err := s.checkSession(sess); err != nil {
		return Outcome{State: StatePending}, err
	}

	user := sess.User
	book := sess.SelectedBook

	previous := user.BorrowedBooks
	next, removed := models.RemoveBorrowRecord(previous, book.ID)
	if !removed {
		return Outcome{State: StatePending, BorrowedBooks: previous}, ErrNotBorrowed
	}

	user.BorrowedBooks = next

	if err := s.Users.UpdateBorrowedBooks(ctx, user.Email, next); err != nil {
		user.BorrowedBooks = previous
		return Outcome{State: StateRolledBack, BorrowedBooks: previous}, err
	}

	newCount := book.BorrowCount - 1
	if newCount < 0 {
		newCount = 0
	}
	if err := s.Books.UpdateBorrowCount(ctx, book.ID, newCount); err != nil {
		user.BorrowedBooks = previous
		return Outcome{State: StateRolledBack, BorrowedBooks: previous}, err
	}

	book.BorrowCount = newCount
	return Outcome{State: StateCommitted, BorrowedBooks: next}, nil
}
