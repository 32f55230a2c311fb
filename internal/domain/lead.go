package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LeadStatus tracks where a lead sits in the sales pipeline
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusQualified LeadStatus = "QUALIFIED"
	LeadStatusProposal  LeadStatus = "PROPOSAL"
	LeadStatusConverted LeadStatus = "CONVERTED"
	LeadStatusLost      LeadStatus = "LOST"
)

// LeadStatuses lists every valid pipeline status
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusProposal,
	LeadStatusConverted,
	LeadStatusLost,
}

// IsValid reports whether s is a known lead status
func (s LeadStatus) IsValid() bool {
	for _, valid := range LeadStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Mobility aid tags a customer can select on the quote request form
const (
	MobilityAidWheelchair = "wheelchair"
	MobilityAidWalker     = "walker"
	MobilityAidScooter    = "motorized scooter"
	MobilityAidOther      = "other"
)

// MobilityAids lists every valid aid tag
var MobilityAids = []string{
	MobilityAidWheelchair,
	MobilityAidWalker,
	MobilityAidScooter,
	MobilityAidOther,
}

// InstallTimeframes lists the selectable install timeframe labels
var InstallTimeframes = []string{
	"ASAP",
	"2 days",
	"3-5 days",
	"1 week",
	"over a week",
}

// DefaultLeadSource is used when a lead arrives without a source
const DefaultLeadSource = "Manual Entry"

// Lead represents a prospective customer's ramp install request
type Lead struct {
	ID                 string                      `gorm:"primaryKey;size:36" json:"id"`
	FirstName          string                      `gorm:"not null" json:"first_name"`
	LastName           string                      `gorm:"not null" json:"last_name"`
	Email              string                      `gorm:"not null;index" json:"email"`
	Phone              string                      `gorm:"not null" json:"phone"`
	KnowRampLength     bool                        `gorm:"not null" json:"know_ramp_length"`
	RampLength         *string                     `json:"ramp_length"`
	KnowRentalDuration bool                        `gorm:"not null" json:"know_rental_duration"`
	RentalDuration     *string                     `json:"rental_duration"`
	InstallTimeframe   string                      `gorm:"not null" json:"install_timeframe"`
	MobilityAids       datatypes.JSONSlice[string] `json:"mobility_aids"`
	OtherAid           *string                     `json:"other_aid"`
	InstallAddress     string                      `gorm:"not null" json:"install_address"`
	Source             string                      `gorm:"not null;default:'Manual Entry'" json:"source"`
	Notes              *string                     `gorm:"type:text" json:"notes"`
	Status             LeadStatus                  `gorm:"not null;default:'NEW';index" json:"status"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

// TableName specifies the table name for Lead
func (Lead) TableName() string {
	return "leads"
}

// BeforeCreate hook
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	if l.Source == "" {
		l.Source = DefaultLeadSource
	}
	return nil
}

// BeforeUpdate hook
func (l *Lead) BeforeUpdate(tx *gorm.DB) error {
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// FullName returns the customer's display name
func (l *Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}
