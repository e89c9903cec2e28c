package repository

import (
	"context"
	"fmt"
	"io/fs"
	"slices"

	"intake-assistant/backend/internal/model"
)

// fileRepository holds the provider directory and schedule parsed from the
// resource files. It is fully built before it is returned and never changes
// afterwards.
type fileRepository struct {
	providers []model.ProviderRecord
	slots     []model.ScheduleSlot
	slotIndex map[string]int
	provIndex map[string]int
}

// NewFileRepository parses providersFile and scheduleFile from fsys. A missing
// or unreadable file is an error.
func NewFileRepository(fsys fs.FS, providersFile, scheduleFile string) (Repository, error) {
	pf, err := fsys.Open(providersFile)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", providersFile, err)
	}
	defer pf.Close() //nolint:errcheck

	providers, err := ParseProviders(pf)
	if err != nil {
		return nil, err
	}

	sf, err := fsys.Open(scheduleFile)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", scheduleFile, err)
	}
	defer sf.Close() //nolint:errcheck

	slots, err := ParseSchedule(sf)
	if err != nil {
		return nil, err
	}

	return newFileRepository(providers, slots), nil
}

func newFileRepository(providers []model.ProviderRecord, slots []model.ScheduleSlot) *fileRepository {
	r := &fileRepository{
		providers: providers,
		slots:     slots,
		slotIndex: make(map[string]int, len(slots)),
		provIndex: make(map[string]int, len(providers)),
	}
	// First occurrence wins for duplicate ids.
	for i, s := range slots {
		if _, ok := r.slotIndex[s.SlotID]; !ok {
			r.slotIndex[s.SlotID] = i
		}
	}
	for i, p := range providers {
		if _, ok := r.provIndex[p.ID]; !ok {
			r.provIndex[p.ID] = i
		}
	}
	return r
}

func (r *fileRepository) ListProviders(_ context.Context) ([]model.ProviderRecord, error) {
	out := make([]model.ProviderRecord, len(r.providers))
	for i, p := range r.providers {
		out[i] = cloneProvider(p)
	}
	return out, nil
}

func (r *fileRepository) ListSlots(_ context.Context) ([]model.ScheduleSlot, error) {
	return slices.Clone(r.slots), nil
}

func (r *fileRepository) GetSlot(_ context.Context, slotID string) (*model.ScheduleSlot, error) {
	i, ok := r.slotIndex[slotID]
	if !ok {
		return nil, ErrNotFound
	}
	slot := r.slots[i]
	return &slot, nil
}

func (r *fileRepository) GetProvider(_ context.Context, providerID string) (*model.ProviderRecord, error) {
	i, ok := r.provIndex[providerID]
	if !ok {
		return nil, ErrNotFound
	}
	p := cloneProvider(r.providers[i])
	return &p, nil
}

func cloneProvider(p model.ProviderRecord) model.ProviderRecord {
	p.Styles = slices.Clone(p.Styles)
	p.LivedExp = slices.Clone(p.LivedExp)
	p.Languages = slices.Clone(p.Languages)
	p.LicensedStates = slices.Clone(p.LicensedStates)
	p.Insurance = slices.Clone(p.Insurance)
	return p
}
