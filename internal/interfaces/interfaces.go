package interfaces

import (
	"context"

	"intake-assistant/backend/internal/model"
	"intake-assistant/backend/internal/service"
)

// This file defines the interfaces for our core services.
// The API layer depends on these instead of the concrete services, so
// handlers can be tested against mocks.

// ChatService defines the contract for the chat orchestrator.
type ChatService interface {
	Reply(ctx context.Context, req *service.ChatRequest) (*service.ChatReply, error)
}

// DirectoryService defines the contract for the provider and schedule lookups
// and the booking stub.
type DirectoryService interface {
	ListProviders(ctx context.Context, filter service.ProviderFilter) (*model.ListResult[model.ProviderRecord], error)
	ListSlots(ctx context.Context, providerID string) (*model.ListResult[model.ScheduleSlot], error)
	Book(ctx context.Context, req *service.BookingRequest) (*model.Appointment, error)
}

// DiagnosticsService defines the contract for the configuration report.
type DiagnosticsService interface {
	Report(ctx context.Context) (*service.DiagnosticsReport, error)
}

var (
	_ ChatService        = (*service.ChatService)(nil)
	_ DirectoryService   = (*service.DirectoryService)(nil)
	_ DiagnosticsService = (*service.DiagService)(nil)
)
