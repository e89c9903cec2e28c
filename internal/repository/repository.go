package repository

import (
	"context"

	"intake-assistant/backend/internal/model"
)

// Repository defines read access to the provider directory and the schedule.
// Implementations are loaded once and are safe for concurrent use; every
// accessor returns a copy the caller may modify.
type Repository interface {
	ListProviders(ctx context.Context) ([]model.ProviderRecord, error)
	ListSlots(ctx context.Context) ([]model.ScheduleSlot, error)
	GetSlot(ctx context.Context, slotID string) (*model.ScheduleSlot, error)
	GetProvider(ctx context.Context, providerID string) (*model.ProviderRecord, error)
}
