package types

// ScanStatus classifies the outcome of a scan. All three are expected domain
// outcomes, not errors.
type ScanStatus string

const (
	ScanSuccess     ScanStatus = "SUCCESS"
	ScanCooldown    ScanStatus = "COOLDOWN"
	ScanCardUnknown ScanStatus = "CARD_UNKNOWN"
)

// ScanResult is the presence engine's decision for one scan request.
type ScanResult struct {
	Status ScanStatus

	// CardID is the normalized (trimmed, uppercased) card identifier.
	CardID string

	// Set on SUCCESS and COOLDOWN (the card matched a person).
	PersonID    string
	DisplayName string

	// Set on SUCCESS.
	Action Action

	// Set on COOLDOWN: whole seconds until the next scan is accepted,
	// rounded down, never negative.
	RemainingSeconds int64
}

// Wire shapes for the scanner endpoint. The ESP32 firmware keys off the HTTP
// status code and these exact field names, so they are fixed.

type ScanUnknownResponse struct {
	Message string `json:"message"`
	CardUID string `json:"card_uid"`
}

type ScanCooldownResponse struct {
	Message          string     `json:"message"`
	Status           ScanStatus `json:"status"`
	RemainingSeconds int64      `json:"remaining_seconds"`
}

type ScanSuccessResponse struct {
	Message  string     `json:"message"`
	Status   ScanStatus `json:"status"`
	PersonID string     `json:"person_id"`
	Action   Action     `json:"action"`
}
