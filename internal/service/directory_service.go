package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	app_errors "intake-assistant/backend/internal/errors"
	"intake-assistant/backend/internal/model"
	"intake-assistant/backend/internal/repository"
)

// ProviderFilter holds the optional provider lookup filters. Zip is accepted
// for compatibility with the widget but the directory has no zip data.
type ProviderFilter struct {
	Query     string
	Type      string
	Insurance string
	State     string
	Zip       string
}

// BookingRequest is the payload of the booking stub.
type BookingRequest struct {
	ProviderID string          `json:"providerId" validate:"required" example:"prov_007"`
	SlotID     string          `json:"slotId" validate:"required" example:"slot_0008"`
	Patient    json.RawMessage `json:"patient" validate:"required" swaggertype:"object"`
}

// DirectoryService serves the provider and schedule lookups and the booking
// stub.
type DirectoryService struct {
	repo           repository.Repository
	providersLimit int
	scheduleLimit  int
}

func NewDirectoryService(repo repository.Repository, providersLimit, scheduleLimit int) *DirectoryService {
	if providersLimit <= 0 {
		providersLimit = 50
	}
	if scheduleLimit <= 0 {
		scheduleLimit = 100
	}
	return &DirectoryService{repo: repo, providersLimit: providersLimit, scheduleLimit: scheduleLimit}
}

// ListProviders returns the providers matching every non-empty filter. Count
// is the number of matches before the limit is applied.
func (s *DirectoryService) ListProviders(ctx context.Context, f ProviderFilter) (*model.ListResult[model.ProviderRecord], error) {
	all, err := s.repo.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list providers: %w", err)
	}

	typ := strings.ToLower(strings.TrimSpace(f.Type))
	query := strings.ToLower(strings.TrimSpace(f.Query))
	insurance := strings.ToLower(strings.TrimSpace(f.Insurance))
	state := strings.ToLower(strings.TrimSpace(f.State))

	matches := make([]model.ProviderRecord, 0, len(all))
	for _, p := range all {
		if typ != "" && strings.ToLower(p.Type) != typ {
			continue
		}
		if insurance != "" && !anyContains(p.Insurance, insurance) {
			continue
		}
		if state != "" && !anyEqualFold(p.LicensedStates, state) {
			continue
		}
		if query != "" && !strings.Contains(haystack(p), query) {
			continue
		}
		matches = append(matches, p)
	}

	return capped(matches, s.providersLimit), nil
}

// ListSlots returns the slots of providerID, or every slot when it is empty.
func (s *DirectoryService) ListSlots(ctx context.Context, providerID string) (*model.ListResult[model.ScheduleSlot], error) {
	all, err := s.repo.ListSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list slots: %w", err)
	}

	providerID = strings.TrimSpace(providerID)
	matches := make([]model.ScheduleSlot, 0, len(all))
	for _, slot := range all {
		if providerID == "" || slot.ProviderID == providerID {
			matches = append(matches, slot)
		}
	}
	return capped(matches, s.scheduleLimit), nil
}

// Book validates a booking and returns a synthetic appointment. The provider
// must be listed; an unlisted slot is accepted. Nothing is stored.
func (s *DirectoryService) Book(ctx context.Context, req *BookingRequest) (*model.Appointment, error) {
	providerID := strings.TrimSpace(req.ProviderID)
	slotID := strings.TrimSpace(req.SlotID)
	if providerID == "" || slotID == "" || emptyJSON(req.Patient) {
		return nil, fmt.Errorf("%w: providerId, slotId, patient required", app_errors.ErrValidation)
	}

	if _, err := s.repo.GetProvider(ctx, providerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown provider %s", app_errors.ErrValidation, providerID)
		}
		return nil, fmt.Errorf("could not look up provider: %w", err)
	}

	slot, err := s.repo.GetSlot(ctx, slotID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		slog.Debug("Booking an unlisted slot", "slot_id", slotID)
	case err != nil:
		return nil, fmt.Errorf("could not look up slot: %w", err)
	case slot.ProviderID != providerID:
		return nil, fmt.Errorf("%w: slot %s does not belong to provider %s", app_errors.ErrValidation, slotID, providerID)
	}

	appt := &model.Appointment{
		AppointmentID: "apt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		ProviderID:    providerID,
		SlotID:        slotID,
	}
	slog.Info("Booking accepted", "appointment_id", appt.AppointmentID, "provider_id", providerID, "slot_id", slotID)
	return appt, nil
}

func capped[T any](items []T, limit int) *model.ListResult[T] {
	count := len(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return &model.ListResult[T]{Count: count, Items: items}
}

func haystack(p model.ProviderRecord) string {
	parts := []string{p.ID, p.Name, p.Type}
	parts = append(parts, p.Styles...)
	parts = append(parts, p.LivedExp...)
	parts = append(parts, p.Languages...)
	parts = append(parts, p.LicensedStates...)
	parts = append(parts, p.Insurance...)
	return strings.ToLower(strings.Join(parts, " "))
}

func anyContains(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func anyEqualFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

// emptyJSON reports a missing, falsy or empty patient value.
func emptyJSON(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", `""`, "{}", "[]", "false", "0":
		return true
	}
	return false
}
