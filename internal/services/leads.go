package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/samedayramps/app-samedayramps/internal/domain"
	"github.com/samedayramps/app-samedayramps/internal/metrics"
	"github.com/samedayramps/app-samedayramps/internal/views"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RecentLeadsLimit is how many leads the dashboard overview shows
const RecentLeadsLimit = 5

// LeadService implements the lead repository
type LeadService struct {
	db    *gorm.DB
	views *views.Bus
}

// NewLeadService creates a new lead service
func NewLeadService(db *gorm.DB, bus *views.Bus) *LeadService {
	return &LeadService{db: db, views: bus}
}

// LeadInput carries the fields of a lead create or update request
type LeadInput struct {
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	KnowRampLength     bool     `json:"know_ramp_length"`
	RampLength         string   `json:"ramp_length"`
	KnowRentalDuration bool     `json:"know_rental_duration"`
	RentalDuration     string   `json:"rental_duration"`
	InstallTimeframe   string   `json:"install_timeframe"`
	MobilityAids       []string `json:"mobility_aids"`
	OtherAid           string   `json:"other_aid"`
	InstallAddress     string   `json:"install_address"`
	Source             string   `json:"source"`
	Notes              string   `json:"notes"`
}

// LeadOverview is the dashboard summary: the most recent leads plus
// aggregate counts by pipeline status
type LeadOverview struct {
	RecentLeads  []domain.Lead               `json:"recent_leads"`
	StatusCounts map[domain.LeadStatus]int64 `json:"status_counts"`
}

// LeadStats is the full leads listing with aggregate counts
type LeadStats struct {
	Leads        []domain.Lead               `json:"leads"`
	TotalLeads   int64                       `json:"total_leads"`
	StatusCounts map[domain.LeadStatus]int64 `json:"status_counts"`
}

// validateLead validates a lead payload. Create and update share it.
func validateLead(in *LeadInput) *ValidationError {
	ve := NewValidationError()

	if strings.TrimSpace(in.FirstName) == "" {
		ve.Add("first_name", "First name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		ve.Add("last_name", "Last name is required")
	}
	if !emailRegex.MatchString(strings.TrimSpace(in.Email)) {
		ve.Add("email", "Invalid email address")
	}
	if strings.TrimSpace(in.Phone) == "" {
		ve.Add("phone", "Phone number is required")
	}
	timeframe := strings.TrimSpace(in.InstallTimeframe)
	if timeframe == "" {
		ve.Add("install_timeframe", "Install timeframe is required")
	} else if !isKnownTimeframe(timeframe) {
		ve.Add("install_timeframe", "Unknown install timeframe")
	}
	if strings.TrimSpace(in.InstallAddress) == "" {
		ve.Add("install_address", "Install address is required")
	}
	for _, aid := range in.MobilityAids {
		if strings.TrimSpace(aid) == "" {
			continue
		}
		if !isKnownMobilityAid(aid) {
			ve.Add("mobility_aids", "Unknown mobility aid: "+aid)
		}
	}

	return ve
}

func isKnownTimeframe(timeframe string) bool {
	for _, known := range domain.InstallTimeframes {
		if timeframe == known {
			return true
		}
	}
	return false
}

func isKnownMobilityAid(aid string) bool {
	for _, known := range domain.MobilityAids {
		if aid == known {
			return true
		}
	}
	return false
}

// applyLeadInput copies a validated payload onto a lead, enforcing the
// gating rules: ramp length and rental duration are stored only when their
// "know" flag is set, the other-aid text only when "other" is selected, and
// empty mobility-aid entries are discarded.
func applyLeadInput(lead *domain.Lead, in *LeadInput) {
	lead.FirstName = strings.TrimSpace(in.FirstName)
	lead.LastName = strings.TrimSpace(in.LastName)
	lead.Email = strings.ToLower(strings.TrimSpace(in.Email))
	lead.Phone = strings.TrimSpace(in.Phone)

	lead.KnowRampLength = in.KnowRampLength
	lead.RampLength = nil
	if in.KnowRampLength && strings.TrimSpace(in.RampLength) != "" {
		value := strings.TrimSpace(in.RampLength)
		lead.RampLength = &value
	}

	lead.KnowRentalDuration = in.KnowRentalDuration
	lead.RentalDuration = nil
	if in.KnowRentalDuration && strings.TrimSpace(in.RentalDuration) != "" {
		value := strings.TrimSpace(in.RentalDuration)
		lead.RentalDuration = &value
	}

	lead.InstallTimeframe = strings.TrimSpace(in.InstallTimeframe)

	aids := make([]string, 0, len(in.MobilityAids))
	hasOther := false
	for _, aid := range in.MobilityAids {
		trimmed := strings.TrimSpace(aid)
		if trimmed == "" {
			continue
		}
		aids = append(aids, trimmed)
		if trimmed == domain.MobilityAidOther {
			hasOther = true
		}
	}
	lead.MobilityAids = aids

	lead.OtherAid = nil
	if hasOther && strings.TrimSpace(in.OtherAid) != "" {
		value := strings.TrimSpace(in.OtherAid)
		lead.OtherAid = &value
	}

	lead.InstallAddress = strings.TrimSpace(in.InstallAddress)

	lead.Source = strings.TrimSpace(in.Source)
	if lead.Source == "" {
		lead.Source = domain.DefaultLeadSource
	}

	lead.Notes = nil
	if strings.TrimSpace(in.Notes) != "" {
		value := strings.TrimSpace(in.Notes)
		lead.Notes = &value
	}
}

// Create validates and persists a new lead
func (s *LeadService) Create(ctx context.Context, in *LeadInput) (*domain.Lead, error) {
	log.Printf("[LEAD] Create request: name=%s %s, email=%s", strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName), strings.TrimSpace(in.Email))

	if ve := validateLead(in); ve.HasErrors() {
		log.Printf("[LEAD] Create failed: validation error: %v", ve)
		return nil, ve
	}

	lead := &domain.Lead{}
	applyLeadInput(lead, in)

	if err := s.db.WithContext(ctx).Create(lead).Error; err != nil {
		log.Printf("[LEAD] Create failed: database error: %v", err)
		return nil, internal("failed to create lead", err)
	}

	log.Printf("[LEAD] Create successful: id=%s, email=%s", lead.ID, lead.Email)
	metrics.RecordLeadCreated()
	s.views.Invalidate(views.Leads, views.Dashboard)
	return lead, nil
}

// Get returns a lead by id
func (s *LeadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	var lead domain.Lead
	if err := s.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("lead")
		}
		log.Printf("[LEAD] Get failed: database error: %v", err)
		return nil, internal("failed to fetch lead", err)
	}
	return &lead, nil
}

// Update validates and updates all editable fields of a lead
func (s *LeadService) Update(ctx context.Context, id string, in *LeadInput) (*domain.Lead, error) {
	log.Printf("[LEAD] Update request: id=%s", id)

	if ve := validateLead(in); ve.HasErrors() {
		log.Printf("[LEAD] Update failed: validation error: %v", ve)
		return nil, ve
	}

	var lead domain.Lead
	if err := s.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[LEAD] Update failed: lead id=%s not found", id)
			return nil, notFound("lead")
		}
		log.Printf("[LEAD] Update failed: database error: %v", err)
		return nil, internal("failed to fetch lead", err)
	}

	applyLeadInput(&lead, in)

	if err := s.db.WithContext(ctx).Save(&lead).Error; err != nil {
		log.Printf("[LEAD] Update failed: save error: %v", err)
		return nil, internal("failed to update lead", err)
	}

	log.Printf("[LEAD] Update successful: id=%s", lead.ID)
	s.views.Invalidate(views.Leads, views.Dashboard)
	return &lead, nil
}

// UpdateStatus moves a lead to a new pipeline status. Any status may move to
// any other; setting the current status again is a valid no-op.
func (s *LeadService) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error {
	log.Printf("[LEAD] UpdateStatus request: id=%s, status=%s", id, status)

	if !status.IsValid() {
		ve := NewValidationError()
		ve.Add("status", "Unknown lead status: "+string(status))
		return ve
	}

	var lead domain.Lead
	if err := s.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[LEAD] UpdateStatus failed: lead id=%s not found", id)
			return notFound("lead")
		}
		log.Printf("[LEAD] UpdateStatus failed: database error: %v", err)
		return internal("failed to fetch lead", err)
	}

	if err := s.db.WithContext(ctx).Model(&lead).Update("status", status).Error; err != nil {
		log.Printf("[LEAD] UpdateStatus failed: save error: %v", err)
		return internal("failed to update status", err)
	}

	log.Printf("[LEAD] UpdateStatus successful: id=%s, status=%s", id, status)
	metrics.RecordLeadStatusUpdate(string(status))
	s.views.Invalidate(views.Leads, views.Dashboard)
	return nil
}

// Delete removes a lead. A lead with quotes is not deleted: quotes must not
// be orphaned, so the caller has to delete them first.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	log.Printf("[LEAD] Delete request: id=%s", id)

	var lead domain.Lead
	if err := s.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[LEAD] Delete failed: lead id=%s not found", id)
			return notFound("lead")
		}
		log.Printf("[LEAD] Delete failed: database error: %v", err)
		return internal("failed to fetch lead", err)
	}

	var quoteCount int64
	if err := s.db.WithContext(ctx).Model(&domain.Quote{}).Where("lead_id = ?", id).Count(&quoteCount).Error; err != nil {
		log.Printf("[LEAD] Delete failed: quote count error: %v", err)
		return internal("failed to delete lead", err)
	}
	if quoteCount > 0 {
		log.Printf("[LEAD] Delete refused: lead id=%s has %d quotes", id, quoteCount)
		return conflict("lead has quotes; delete them first")
	}

	if err := s.db.WithContext(ctx).Delete(&lead).Error; err != nil {
		log.Printf("[LEAD] Delete failed: database error: %v", err)
		return internal("failed to delete lead", err)
	}

	log.Printf("[LEAD] Delete successful: id=%s", id)
	s.views.Invalidate(views.Leads, views.Dashboard)
	return nil
}

// List returns all leads, newest first
func (s *LeadService) List(ctx context.Context) ([]domain.Lead, error) {
	var leads []domain.Lead
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&leads).Error; err != nil {
		log.Printf("[LEAD] List failed: database error: %v", err)
		return nil, internal("failed to fetch leads", err)
	}
	return leads, nil
}

// Overview returns the dashboard summary: the five most recent leads plus
// counts by status
func (s *LeadService) Overview(ctx context.Context) (*LeadOverview, error) {
	var recent []domain.Lead
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(RecentLeadsLimit).Find(&recent).Error; err != nil {
		log.Printf("[LEAD] Overview failed: database error: %v", err)
		return nil, internal("failed to fetch leads overview", err)
	}

	counts, err := s.countByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &LeadOverview{RecentLeads: recent, StatusCounts: counts}, nil
}

// Stats returns every lead plus aggregate counts
func (s *LeadService) Stats(ctx context.Context) (*LeadStats, error) {
	leads, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.countByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &LeadStats{
		Leads:        leads,
		TotalLeads:   int64(len(leads)),
		StatusCounts: counts,
	}, nil
}

func (s *LeadService) countByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error) {
	var rows []struct {
		Status domain.LeadStatus
		Count  int64
	}
	if err := s.db.WithContext(ctx).
		Model(&domain.Lead{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		log.Printf("[LEAD] Status counts failed: database error: %v", err)
		return nil, internal("failed to aggregate lead statuses", err)
	}

	counts := make(map[domain.LeadStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
