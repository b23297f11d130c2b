package mapping

import (
	"time"

	"github.com/SscSPs/banking_backoffice/internal/models"
)

// ToModelAuditFields builds the audit columns from domain timestamps.
func ToModelAuditFields(createdAt, lastUpdatedAt time.Time) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     createdAt,
		LastUpdatedAt: lastUpdatedAt,
	}
}
