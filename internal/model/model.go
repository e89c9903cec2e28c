package model

// Roles accepted in a chat transcript.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is a single message of the client-held transcript.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider types as they appear in the providers resource.
const (
	ProviderTherapy    = "Therapy"
	ProviderPsychiatry = "Psychiatry"
	ProviderBoth       = "Both"
)

// ProviderRecord is one clinician parsed from the providers resource.
type ProviderRecord struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Styles         []string `json:"styles"`
	LivedExp       []string `json:"lived"`
	Languages      []string `json:"languages"`
	LicensedStates []string `json:"licensed"`
	Insurance      []string `json:"insurance"`
	Email          string   `json:"email"`
}

// ScheduleSlot is one open appointment window parsed from the schedule resource.
type ScheduleSlot struct {
	SlotID       string `json:"slot_id"`
	ProviderID   string `json:"prov_id"`
	ProviderName string `json:"name"`
	Type         string `json:"type"`
	Window       string `json:"window"`
	Telehealth   bool   `json:"telehealth"`
}

// Appointment is the result of the booking stub. It is never stored.
type Appointment struct {
	AppointmentID string `json:"appointmentId"`
	ProviderID    string `json:"providerId"`
	SlotID        string `json:"slotId"`
}

// ListResult is the envelope for the lookup endpoints: Count is the number of
// matches before the cap is applied.
type ListResult[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}
