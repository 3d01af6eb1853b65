package models

import "time"

// BorrowDateLayout matches the month/day/year strings the records are
// stored with, without zero padding ("6/3/2026").
const BorrowDateLayout = "1/2/2006"

const (
	BorrowEntity = "borrow"
)

// BorrowRecord is owned by the user document; book_id is not checked
// against the books collection.
type BorrowRecord struct {
	BookID       string `bson:"book_id" json:"book_id"`
	BorrowedDate string `bson:"borrowed_date" json:"borrowed_date"`
	Title        string `bson:"title" json:"title"`
	Photo        string `bson:"photo" json:"photo"`
}

func NewBorrowRecord(book Book, now time.Time) BorrowRecord {
	return BorrowRecord{
		BookID:       book.ID,
		BorrowedDate: now.Format(BorrowDateLayout),
		Title:        book.Title,
		Photo:        book.Photo,
	}
}

// DueDate derives when the record falls due. It is never persisted.
func (r BorrowRecord) DueDate(loanPeriodDays int) (time.Time, error) {
	borrowed, err := time.Parse(BorrowDateLayout, r.BorrowedDate)
	if err != nil {
		return time.Time{}, err
	}
	return borrowed.AddDate(0, 0, loanPeriodDays), nil
}

func (r BorrowRecord) IsOverdue(loanPeriodDays int, now time.Time) bool {
	due, err := r.DueDate(loanPeriodDays)
	if err != nil {
		return false
	}
	return now.After(due)
}

func HasBorrowed(records []BorrowRecord, bookID string) bool {
	for _, r := range records {
		if r.BookID == bookID {
			return true
		}
	}
	return false
}

// RemoveBorrowRecord returns the list without the record for bookID and
// whether a record was removed.
func RemoveBorrowRecord(records []BorrowRecord, bookID string) ([]BorrowRecord, bool) {
	out := make([]BorrowRecord, 0, len(records))
	removed := false
	for _, r := range records {
		if r.BookID == bookID && !removed {
			removed = true
			continue
		}
		out = append(out, r)
	}
	return out, removed
}

// SanitizeBorrowRecords guarantees a non-nil list whose entries carry no
// empty book id, mirroring the coercion the store applies before writes.
func SanitizeBorrowRecords(records []BorrowRecord) []BorrowRecord {
	out := make([]BorrowRecord, 0, len(records))
	for _, r := range records {
		if r.BookID == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
