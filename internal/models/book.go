package models

// Book is keyed by the domain-level ID, not the Mongo ObjectID. The
// struct deliberately omits _id so documents round-trip without it.
type Book struct {
	ID          string  `bson:"id" json:"id"`
	Title       string  `bson:"title" json:"title"`
	Author      string  `bson:"author" json:"author"`
	Genre       string  `bson:"genre" json:"genre"`
	Description string  `bson:"description" json:"description"`
	Rating      float64 `bson:"rating" json:"rating"`
	Inventory   int     `bson:"inventory" json:"inventory"`
	Photo       string  `bson:"photo" json:"photo"`
	BorrowCount int     `bson:"borrow_count" json:"borrow_count"`
}

const (
	BookEntity = "book"
)
