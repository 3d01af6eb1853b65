package configs

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	MongoURI         string
	DBName           string
	JWTSecret        string
	MaxBorrowedBooks int
	LoanPeriodDays   int
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	maxBorrowed := 3
	if val := os.Getenv("MAX_BORROWED_BOOKS"); val != "" {
		_, err := fmt.Sscanf(val, "%d", &maxBorrowed)
		if err != nil {
			log.Fatalf("Invalid MAX_BORROWED_BOOKS: %v", err)
		}
	}

	loanDays := 7
	if val := os.Getenv("LOAN_PERIOD_DAYS"); val != "" {
		_, err := fmt.Sscanf(val, "%d", &loanDays)
		if err != nil {
			log.Fatalf("Invalid LOAN_PERIOD_DAYS: %v", err)
		}
	}

	return Config{
		Port:             os.Getenv("PORT"),
		MongoURI:         os.Getenv("MONGO_URI"),
		DBName:           os.Getenv("DB_NAME"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		MaxBorrowedBooks: maxBorrowed,
		LoanPeriodDays:   loanDays,
	}
}
