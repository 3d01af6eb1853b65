package utils

import (
	"fmt"

	"github.com/AzmainZaman/CSE470-Project/internal/models"
)

func ExportData(logs []models.AuditLog) error {
	for _, entry := range logs {
		//change with actual calls
		fmt.Println(entry.Timestamp, entry.Entity, entry.Action, entry.PerformedBy)
	}
	return nil
}
