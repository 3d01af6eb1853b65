package models_test

import (
	"testing"

	"github.com/AzmainZaman/CSE470-Project/internal/models"
)

func TestIsValidUserType(t *testing.T) {
	tests := []struct {
		name     string
		userType string
		isValid  bool
	}{
		{"Valid Admin Type", string(models.UserTypeAdmin), true},
		{"Valid User Type", string(models.UserTypeUser), true},
		{"Invalid Type", "moderator", false},
		{"Empty Type", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.IsValidUserType(tt.userType); got != tt.isValid {
				t.Errorf("IsValidUserType() = %v, want %v", got, tt.isValid)
			}
		})
	}
}
