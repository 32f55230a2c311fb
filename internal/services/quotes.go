package services

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/samedayramps/app-samedayramps/internal/config"
	"github.com/samedayramps/app-samedayramps/internal/domain"
	"github.com/samedayramps/app-samedayramps/internal/metrics"
	"github.com/samedayramps/app-samedayramps/internal/pricing"
	"github.com/samedayramps/app-samedayramps/internal/views"
)

// Quote creation actions
const (
	QuoteActionSave = "save"
	QuoteActionSend = "send"
)

// QuoteService implements the quote repository
type QuoteService struct {
	db       *gorm.DB
	settings *SettingsService
	email    *EmailService
	app      *config.AppConfig
	views    *views.Bus
}

// NewQuoteService creates a new quote service
func NewQuoteService(db *gorm.DB, settings *SettingsService, email *EmailService, app *config.AppConfig, bus *views.Bus) *QuoteService {
	return &QuoteService{
		db:       db,
		settings: settings,
		email:    email,
		app:      app,
		views:    bus,
	}
}

// QuoteInput carries a quote creation request. Price is the client's own
// estimate; the stored price is always recomputed server-side from the same
// inputs and the current settings.
type QuoteInput struct {
	LeadID     string  `json:"lead_id"`
	RampLength float64 `json:"ramp_length"`
	Platforms  int     `json:"platforms"`
	Distance   float64 `json:"distance"`
	Price      float64 `json:"price"`
	Notes      string  `json:"notes"`
	Action     string  `json:"action"`
}

func validateQuote(in *QuoteInput) *ValidationError {
	ve := NewValidationError()

	if in.LeadID == "" {
		ve.Add("lead_id", "Lead is required")
	}
	if in.RampLength <= 0 {
		ve.Add("ramp_length", "Ramp length must be a positive number")
	}
	if in.Platforms < 0 {
		ve.Add("platforms", "Platforms must be zero or greater")
	}
	if in.Distance <= 0 {
		// A non-positive distance is the distance-lookup failure sentinel,
		// never a real zero-mile delivery.
		ve.Add("distance", "Failed to calculate delivery distance. Please try again or contact support.")
	}
	if in.Action != QuoteActionSave && in.Action != QuoteActionSend {
		ve.Add("action", "Action must be either save or send")
	}

	return ve
}

// Create validates and persists a quote in one transaction. action=send
// stamps SENT with sentAt=now and expiresAt=now+30d and, in production,
// emails the quote to the customer after the commit.
func (s *QuoteService) Create(ctx context.Context, in *QuoteInput) (*domain.Quote, error) {
	log.Printf("[QUOTE] Create request: lead=%s, action=%s", in.LeadID, in.Action)

	if ve := validateQuote(in); ve.HasErrors() {
		log.Printf("[QUOTE] Create failed: validation error: %v", ve)
		return nil, ve
	}

	settings := s.settings.Get(ctx)
	computed := pricing.Total(in.RampLength, in.Platforms, in.Distance, settings)
	if in.Price > 0 && math.Abs(in.Price-computed) > 0.01 {
		log.Printf("[QUOTE] Submitted price $%.2f disagrees with computed $%.2f; storing computed", in.Price, computed)
	}

	quote := &domain.Quote{
		LeadID:     in.LeadID,
		RampLength: in.RampLength,
		Platforms:  in.Platforms,
		Distance:   in.Distance,
		Price:      computed,
		Status:     domain.QuoteStatusDraft,
	}
	if in.Notes != "" {
		notes := in.Notes
		quote.Notes = &notes
	}

	now := time.Now().UTC()
	if in.Action == QuoteActionSend {
		quote.Status = domain.QuoteStatusSent
		quote.CreatedAt = now
		quote.SentAt = &now
		expires := now.Add(domain.QuoteValidityDays * 24 * time.Hour)
		quote.ExpiresAt = &expires
	}

	var lead domain.Lead
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lead, "id = ?", in.LeadID).Error; err != nil {
			return err
		}
		return tx.Create(quote).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[QUOTE] Create failed: lead id=%s not found", in.LeadID)
			return nil, notFound("lead")
		}
		log.Printf("[QUOTE] Create failed: database error: %v", err)
		return nil, internal("failed to create quote", err)
	}
	quote.Lead = &lead

	log.Printf("[QUOTE] Create successful: id=%s, lead=%s, status=%s, price=$%.2f", quote.ID, quote.LeadID, quote.Status, quote.Price)
	metrics.RecordQuoteCreated(in.Action)
	s.views.Invalidate(views.Leads, views.Quotes)

	// Email delivery is best-effort and happens outside the transaction: a
	// delivery failure never rolls back the committed quote.
	if in.Action == QuoteActionSend && s.app.IsProduction() {
		go func(q domain.Quote, l domain.Lead) {
			if err := s.email.SendQuote(&q, &l); err != nil {
				log.Printf("[QUOTE] Warning: failed to send quote email for id=%s: %v", q.ID, err)
				metrics.RecordQuoteEmail(false)
			} else {
				log.Printf("[QUOTE] Quote email sent for id=%s to %s", q.ID, l.Email)
				metrics.RecordQuoteEmail(true)
			}
		}(*quote, lead)
	}

	return quote, nil
}

// Get returns a quote with its lead
func (s *QuoteService) Get(ctx context.Context, id string) (*domain.Quote, error) {
	var quote domain.Quote
	if err := s.db.WithContext(ctx).Preload("Lead").First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("quote")
		}
		log.Printf("[QUOTE] Get failed: database error: %v", err)
		return nil, internal("failed to fetch quote", err)
	}
	return &quote, nil
}

// List returns all quotes with their leads, newest first
func (s *QuoteService) List(ctx context.Context) ([]domain.Quote, error) {
	var quotes []domain.Quote
	if err := s.db.WithContext(ctx).Preload("Lead").Order("created_at DESC").Find(&quotes).Error; err != nil {
		log.Printf("[QUOTE] List failed: database error: %v", err)
		return nil, internal("failed to fetch quotes", err)
	}
	return quotes, nil
}

// UpdateStatus sets a quote's status out of band (accept, reject, resend)
func (s *QuoteService) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) error {
	log.Printf("[QUOTE] UpdateStatus request: id=%s, status=%s", id, status)

	if !status.IsValid() {
		ve := NewValidationError()
		ve.Add("status", "Unknown quote status: "+string(status))
		return ve
	}

	var quote domain.Quote
	if err := s.db.WithContext(ctx).First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[QUOTE] UpdateStatus failed: quote id=%s not found", id)
			return notFound("quote")
		}
		log.Printf("[QUOTE] UpdateStatus failed: database error: %v", err)
		return internal("failed to fetch quote", err)
	}

	if err := s.db.WithContext(ctx).Model(&quote).Update("status", status).Error; err != nil {
		log.Printf("[QUOTE] UpdateStatus failed: save error: %v", err)
		return internal("failed to update quote status", err)
	}

	log.Printf("[QUOTE] UpdateStatus successful: id=%s, status=%s", id, status)
	s.views.Invalidate(views.Quotes)
	return nil
}

// Delete removes a quote
func (s *QuoteService) Delete(ctx context.Context, id string) error {
	log.Printf("[QUOTE] Delete request: id=%s", id)

	var quote domain.Quote
	if err := s.db.WithContext(ctx).First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[QUOTE] Delete failed: quote id=%s not found", id)
			return notFound("quote")
		}
		log.Printf("[QUOTE] Delete failed: database error: %v", err)
		return internal("failed to fetch quote", err)
	}

	if err := s.db.WithContext(ctx).Delete(&quote).Error; err != nil {
		log.Printf("[QUOTE] Delete failed: database error: %v", err)
		return internal("failed to delete quote", err)
	}

	log.Printf("[QUOTE] Delete successful: id=%s", id)
	s.views.Invalidate(views.Leads, views.Quotes)
	return nil
}
