package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuoteStatus tracks the lifecycle of a priced offer
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "DRAFT"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusAccepted QuoteStatus = "ACCEPTED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
)

// QuoteStatuses lists every valid quote status
var QuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusSent,
	QuoteStatusAccepted,
	QuoteStatusRejected,
}

// IsValid reports whether s is a known quote status
func (s QuoteStatus) IsValid() bool {
	for _, valid := range QuoteStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// QuoteValidityDays is how long a sent quote remains open
const QuoteValidityDays = 30

// Quote represents a priced, time-bounded offer derived from a lead
type Quote struct {
	ID         string      `gorm:"primaryKey;size:36" json:"id"`
	LeadID     string      `gorm:"not null;index;size:36" json:"lead_id"`
	Lead       *Lead       `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	RampLength float64     `gorm:"not null" json:"ramp_length"`
	Platforms  int         `gorm:"not null" json:"platforms"`
	Distance   float64     `gorm:"not null" json:"distance"`
	Price      float64     `gorm:"not null" json:"price"`
	Notes      *string     `gorm:"type:text" json:"notes"`
	Status     QuoteStatus `gorm:"not null;default:'DRAFT';index" json:"status"`
	SentAt     *time.Time  `json:"sent_at"`
	ExpiresAt  *time.Time  `json:"expires_at"`
	CreatedAt  time.Time   `json:"created_at"`
}

// TableName specifies the table name for Quote
func (Quote) TableName() string {
	return "quotes"
}

// BeforeCreate hook
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	if q.Status == "" {
		q.Status = QuoteStatusDraft
	}
	return nil
}
