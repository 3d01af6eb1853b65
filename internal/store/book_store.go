package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AzmainZaman/CSE470-Project/internal/models"
)

// BookStore wraps the books collection. Every method performs a single
// document read or write.
type BookStore struct {
	Coll *mongo.Collection
}

func NewBookStore(coll *mongo.Collection) *BookStore {
	return &BookStore{Coll: coll}
}

// CreateBook inserts a book keyed by its domain id. Optional fields keep
// their zero values; the Mongo _id never appears on the returned record.
func (s *BookStore) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	if book.ID == "" {
		return models.Book{}, fmt.Errorf("%w: book id is required", ErrValidation)
	}
	if book.Rating < 0 {
		book.Rating = 0
	}
	if book.Inventory < 0 {
		book.Inventory = 0
	}
	if book.BorrowCount < 0 {
		book.BorrowCount = 0
	}

	if _, err := s.Coll.InsertOne(ctx, book); err != nil {
		return models.Book{}, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

func (s *BookStore) GetAllBooks(ctx context.Context) ([]models.Book, error) {
	cursor, err := s.Coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []models.Book
	if err = cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

// FindBookByID returns (nil, nil) when no book matches.
func (s *BookStore) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	err := s.Coll.FindOne(ctx, bson.M{"id": id}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find book: %w", err)
	}
	return &book, nil
}

// SearchBooks matches title, author or genre case-insensitively.
func (s *BookStore) SearchBooks(ctx context.Context, query string) ([]models.Book, error) {
	if query == "" {
		return s.GetAllBooks(ctx)
	}

	pattern := bson.M{"$regex": query, "$options": "i"}
	filter := bson.M{"$or": []bson.M{
		{"title": pattern},
		{"author": pattern},
		{"genre": pattern},
	}}

	cursor, err := s.Coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []models.Book
	if err = cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

// UpdateBook overwrites every mutable field of the book wholesale.
func (s *BookStore) UpdateBook(ctx context.Context, id string, book models.Book) error {
	res, err := s.Coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"title":        book.Title,
		"author":       book.Author,
		"genre":        book.Genre,
		"description":  book.Description,
		"rating":       book.Rating,
		"inventory":    book.Inventory,
		"photo":        book.Photo,
		"borrow_count": book.BorrowCount,
	}})
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no book with id %s", ErrNotFound, id)
	}
	return nil
}

// UpdateBorrowCount overwrites the borrow counter wholesale, floored at 0.
func (s *BookStore) UpdateBorrowCount(ctx context.Context, id string, count int) error {
	if count < 0 {
		count = 0
	}
	res, err := s.Coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"borrow_count": count}})
	if err != nil {
		return fmt.Errorf("update borrow count: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no book with id %s", ErrNotFound, id)
	}
	return nil
}

func (s *BookStore) ChangeBookPhoto(ctx context.Context, id, photo string) error {
	res, err := s.Coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"photo": photo}})
	if err != nil {
		return fmt.Errorf("change book photo: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no book with id %s", ErrNotFound, id)
	}
	return nil
}

func (s *BookStore) DeleteBook(ctx context.Context, id string) error {
	res, err := s.Coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: no book with id %s", ErrNotFound, id)
	}
	return nil
}
