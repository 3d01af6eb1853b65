package models

type UserType string

const (
	UserTypeAdmin UserType = "admin"
	UserTypeUser  UserType = "user"

	UserEntity = "user"
)

type User struct {
	Name          string         `bson:"name" json:"name"`
	Email         string         `bson:"email" json:"email"`
	Password      string         `bson:"password" json:"-"`
	Phone         string         `bson:"phone" json:"phone"`
	Photo         string         `bson:"photo" json:"photo"`
	Bio           string         `bson:"bio" json:"bio"`
	UserType      UserType       `bson:"user_type" json:"user_type"`
	BorrowedBooks []BorrowRecord `bson:"borrowed_books" json:"borrowed_books"`
}

var ValidUserTypes = map[string]bool{
	string(UserTypeAdmin): true,
	string(UserTypeUser):  true,
}

func IsValidUserType(userType string) bool {
	return ValidUserTypes[userType]
}
