package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AzmainZaman/CSE470-Project/internal/models"
)

// UserStore wraps the users collection. Email is the lookup key for
// every operation.
type UserStore struct {
	Coll *mongo.Collection
}

func NewUserStore(coll *mongo.Collection) *UserStore {
	return &UserStore{Coll: coll}
}

func (s *UserStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.Email == "" {
		return models.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if user.Name == "" {
		return models.User{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	user.BorrowedBooks = models.SanitizeBorrowRecords(user.BorrowedBooks)

	if _, err := s.Coll.InsertOne(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// FindUserByEmail returns (nil, nil) when no user matches; "no match" is
// never an error here.
func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.Coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) GetAllUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.Coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// UpdateBorrowedBooks overwrites the user's borrowed list wholesale with
// the sanitized records. Not a delta append.
func (s *UserStore) UpdateBorrowedBooks(ctx context.Context, email string, records []models.BorrowRecord) error {
	sanitized := models.SanitizeBorrowRecords(records)

	res, err := s.Coll.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": bson.M{"borrowed_books": sanitized}})
	if err != nil {
		return fmt.Errorf("update borrowed books: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
	}
	return nil
}

func (s *UserStore) UpdateUserProfile(ctx context.Context, email, name, phone, bio string) error {
	res, err := s.Coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"name":  name,
		"phone": phone,
		"bio":   bio,
	}})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
	}
	return nil
}

func (s *UserStore) ChangePassword(ctx context.Context, email, passwordHash string) error {
	res, err := s.Coll.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
	}
	return nil
}

func (s *UserStore) ChangePhoto(ctx context.Context, email, photo string) error {
	res, err := s.Coll.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": bson.M{"photo": photo}})
	if err != nil {
		return fmt.Errorf("change photo: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
	}
	return nil
}
