package repository

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-assistant/backend/internal/model"
)

const providersFixture = "Provider directory export\n" +
	"\n" +
	"prov_001\tDana Whitfield, LPC — Therapy\r\n" +
	"    Styles: CBT, DBT ,Mindfulness\n" +
	"    Lived experience: LGBTQ+\n" +
	"    Languages: English\n" +
	"    Licensed states: AZ, NM\n" +
	"    Insurance: Aetna, Self-pay\n" +
	"    Email: dana@example.org\n" +
	"\n" +
	"prov_002\tSam Ortega\n" +
	"    Languages: English, Spanish\n" +
	"    Unknown label: ignored\n" +
	"PROV_003\tJordan Blake — Both\n"

const scheduleFixture = "slot_1 | prov_001 | Dana Whitfield, LPC | Therapy | 2025-09-01 09:00-09:50 (America/Phoenix) | Telehealth Only: Yes\n" +
	"slot_2|prov_002|Sam Ortega|Therapy|2025-09-02 10:00-10:50|Telehealth Only: no\n" +
	"broken | line | with | too few\n" +
	"\n" +
	"slot_3 | prov_001 | Dana Whitfield, LPC | Therapy | 2025-09-03 09:00-09:50 | YES\n"

func TestParseProviders(t *testing.T) {
	providers, err := ParseProviders(strings.NewReader(providersFixture))
	require.NoError(t, err)
	require.Len(t, providers, 3)

	assert.Equal(t, model.ProviderRecord{
		ID:             "prov_001",
		Name:           "Dana Whitfield, LPC",
		Type:           "Therapy",
		Styles:         []string{"CBT", "DBT", "Mindfulness"},
		LivedExp:       []string{"LGBTQ+"},
		Languages:      []string{"English"},
		LicensedStates: []string{"AZ", "NM"},
		Insurance:      []string{"Aetna", "Self-pay"},
		Email:          "dana@example.org",
	}, providers[0])

	// Header without a type defaults to Therapy and keeps the whole rest as name.
	assert.Equal(t, "prov_002", providers[1].ID)
	assert.Equal(t, "Sam Ortega", providers[1].Name)
	assert.Equal(t, model.ProviderTherapy, providers[1].Type)
	assert.Equal(t, []string{"English", "Spanish"}, providers[1].Languages)
	assert.Empty(t, providers[1].Styles)
	assert.NotNil(t, providers[1].Styles)

	assert.Equal(t, "PROV_003", providers[2].ID)
	assert.Equal(t, "Both", providers[2].Type)
}

func TestParseSchedule(t *testing.T) {
	slots, err := ParseSchedule(strings.NewReader(scheduleFixture))
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, model.ScheduleSlot{
		SlotID:       "slot_1",
		ProviderID:   "prov_001",
		ProviderName: "Dana Whitfield, LPC",
		Type:         "Therapy",
		Window:       "2025-09-01 09:00-09:50 (America/Phoenix)",
		Telehealth:   true,
	}, slots[0])
	assert.False(t, slots[1].Telehealth)
	assert.Equal(t, "prov_002", slots[1].ProviderID)
	assert.True(t, slots[2].Telehealth)
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()
	fsys := fstest.MapFS{
		"providers.txt": {Data: []byte(providersFixture)},
		"schedule.txt":  {Data: []byte(scheduleFixture)},
	}

	repo, err := NewFileRepository(fsys, "providers.txt", "schedule.txt")
	require.NoError(t, err)

	t.Run("Accessors return copies", func(t *testing.T) {
		providers, err := repo.ListProviders(ctx)
		require.NoError(t, err)
		providers[0].Name = "changed"
		providers[0].Styles[0] = "changed"

		again, err := repo.ListProviders(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Dana Whitfield, LPC", again[0].Name)
		assert.Equal(t, "CBT", again[0].Styles[0])

		slots, err := repo.ListSlots(ctx)
		require.NoError(t, err)
		slots[0].SlotID = "changed"
		slot, err := repo.GetSlot(ctx, "slot_1")
		require.NoError(t, err)
		assert.Equal(t, "slot_1", slot.SlotID)
	})

	t.Run("GetSlot and GetProvider", func(t *testing.T) {
		slot, err := repo.GetSlot(ctx, "slot_2")
		require.NoError(t, err)
		assert.Equal(t, "prov_002", slot.ProviderID)

		_, err = repo.GetSlot(ctx, "slot_404")
		assert.ErrorIs(t, err, ErrNotFound)

		p, err := repo.GetProvider(ctx, "prov_001")
		require.NoError(t, err)
		assert.Equal(t, "Dana Whitfield, LPC", p.Name)

		_, err = repo.GetProvider(ctx, "prov_999")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Missing file fails", func(t *testing.T) {
		_, err := NewFileRepository(fstest.MapFS{"providers.txt": {Data: []byte(providersFixture)}}, "providers.txt", "schedule.txt")
		assert.Error(t, err)

		_, err = NewFileRepository(fstest.MapFS{"schedule.txt": {Data: []byte(scheduleFixture)}}, "providers.txt", "schedule.txt")
		assert.Error(t, err)
	})
}
