package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "intake-assistant/backend/internal/errors"
	"intake-assistant/backend/internal/repository"
	"intake-assistant/backend/internal/resources"
	"intake-assistant/backend/internal/service"
)

const directoryProviders = "prov_001\tDana Whitfield, LPC — Therapy\n" +
	"    Styles: CBT, DBT\n" +
	"    Languages: English\n" +
	"    Licensed states: AZ, NM\n" +
	"    Insurance: Aetna, Self-pay\n" +
	"prov_002\tSam Ortega, MD — Psychiatry\n" +
	"    Languages: English, Spanish\n" +
	"    Licensed states: CA\n" +
	"    Insurance: UnitedHealthcare\n" +
	"prov_007\tKim Nguyen, LPC — Therapy\n" +
	"    Styles: ACT\n" +
	"    Languages: English, Vietnamese\n" +
	"    Licensed states: AZ, CA\n" +
	"    Insurance: Aetna PPO\n"

const directorySchedule = "slot_1 | prov_001 | Dana Whitfield, LPC | Therapy | Mon 9:00 | Telehealth Only: No\n" +
	"slot_2 | prov_007 | Kim Nguyen, LPC | Therapy | Mon 11:30 | Telehealth Only: Yes\n" +
	"slot_3 | prov_007 | Kim Nguyen, LPC | Therapy | Wed 11:30 | Telehealth Only: Yes\n" +
	"slot_4 | prov_002 | Sam Ortega, MD | Psychiatry | Tue 10:00 | Telehealth Only: Yes\n"

func setupDirectoryService(t *testing.T, providersLimit, scheduleLimit int) *service.DirectoryService {
	t.Helper()
	repo, err := repository.NewFileRepository(fstest.MapFS{
		resources.ProvidersFile: {Data: []byte(directoryProviders)},
		resources.ScheduleFile:  {Data: []byte(directorySchedule)},
	}, resources.ProvidersFile, resources.ScheduleFile)
	require.NoError(t, err)
	return service.NewDirectoryService(repo, providersLimit, scheduleLimit)
}

func TestDirectoryService_ListProviders(t *testing.T) {
	ctx := context.Background()
	directory := setupDirectoryService(t, 50, 100)

	testCases := []struct {
		name     string
		filter   service.ProviderFilter
		expected []string
	}{
		{name: "No filter", filter: service.ProviderFilter{}, expected: []string{"prov_001", "prov_002", "prov_007"}},
		{name: "Type is case-insensitive equality", filter: service.ProviderFilter{Type: "therapy"}, expected: []string{"prov_001", "prov_007"}},
		{name: "Query matches languages", filter: service.ProviderFilter{Query: "VIETNAMESE"}, expected: []string{"prov_007"}},
		{name: "Query matches name", filter: service.ProviderFilter{Query: "ortega"}, expected: []string{"prov_002"}},
		{name: "Insurance substring", filter: service.ProviderFilter{Insurance: "aetna"}, expected: []string{"prov_001", "prov_007"}},
		{name: "State equality", filter: service.ProviderFilter{State: "ca"}, expected: []string{"prov_002", "prov_007"}},
		{name: "Filters combine", filter: service.ProviderFilter{Type: "Therapy", State: "CA"}, expected: []string{"prov_007"}},
		{name: "Zip is ignored", filter: service.ProviderFilter{Zip: "85004"}, expected: []string{"prov_001", "prov_002", "prov_007"}},
		{name: "No match", filter: service.ProviderFilter{Type: "Both"}, expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := directory.ListProviders(ctx, tc.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(result.Items))
			for _, p := range result.Items {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.expected, ids)
			assert.Equal(t, len(tc.expected), result.Count)
		})
	}

	t.Run("Count is taken before the limit", func(t *testing.T) {
		limited := setupDirectoryService(t, 2, 100)
		result, err := limited.ListProviders(ctx, service.ProviderFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Count)
		assert.Len(t, result.Items, 2)
	})
}

func TestDirectoryService_ListSlots(t *testing.T) {
	ctx := context.Background()
	directory := setupDirectoryService(t, 50, 100)

	result, err := directory.ListSlots(ctx, "prov_007")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	for _, slot := range result.Items {
		assert.Equal(t, "prov_007", slot.ProviderID)
	}

	all, err := directory.ListSlots(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 4, all.Count)

	none, err := directory.ListSlots(ctx, "prov_404")
	require.NoError(t, err)
	assert.Equal(t, 0, none.Count)
	assert.NotNil(t, none.Items)

	limited := setupDirectoryService(t, 50, 1)
	capped, err := limited.ListSlots(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 4, capped.Count)
	assert.Len(t, capped.Items, 1)
}

func TestDirectoryService_Book(t *testing.T) {
	ctx := context.Background()
	directory := setupDirectoryService(t, 50, 100)
	patient := json.RawMessage(`{"name":"Alex","email":"alex@example.org"}`)

	t.Run("Success", func(t *testing.T) {
		appt, err := directory.Book(ctx, &service.BookingRequest{ProviderID: "prov_007", SlotID: "slot_2", Patient: patient})

		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^apt_[0-9a-f]{8}$`), appt.AppointmentID)
		assert.Equal(t, "prov_007", appt.ProviderID)
		assert.Equal(t, "slot_2", appt.SlotID)
	})

	t.Run("Unlisted slot is accepted", func(t *testing.T) {
		appt, err := directory.Book(ctx, &service.BookingRequest{ProviderID: "prov_007", SlotID: "slot_new", Patient: patient})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(appt.AppointmentID, "apt_"))
	})

	testCases := []struct {
		name string
		req  service.BookingRequest
	}{
		{name: "Missing provider", req: service.BookingRequest{SlotID: "slot_2", Patient: patient}},
		{name: "Missing slot", req: service.BookingRequest{ProviderID: "prov_007", Patient: patient}},
		{name: "Missing patient", req: service.BookingRequest{ProviderID: "prov_007", SlotID: "slot_2"}},
		{name: "Null patient", req: service.BookingRequest{ProviderID: "prov_007", SlotID: "slot_2", Patient: json.RawMessage("null")}},
		{name: "Empty patient", req: service.BookingRequest{ProviderID: "prov_007", SlotID: "slot_2", Patient: json.RawMessage("{}")}},
		{name: "Slot of another provider", req: service.BookingRequest{ProviderID: "prov_001", SlotID: "slot_2", Patient: patient}},
		{name: "Unknown provider", req: service.BookingRequest{ProviderID: "prov_999", SlotID: "slot_2", Patient: patient}},
		{name: "Unknown provider with unlisted slot", req: service.BookingRequest{ProviderID: "prov_999", SlotID: "slot_new", Patient: patient}},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Rejects %s", strings.ToLower(tc.name)), func(t *testing.T) {
			appt, err := directory.Book(ctx, &tc.req)
			assert.Nil(t, appt)
			assert.ErrorIs(t, err, app_errors.ErrValidation)
		})
	}
}
