package store_test

import "github.com/AzmainZaman/CSE470-Project/internal/models"

func bookFixture(id, title string) models.Book {
	return models.Book{
		ID:    id,
		Title: title,
	}
}

func userFixture(email string) models.User {
	return models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hash",
		UserType: models.UserTypeUser,
	}
}
