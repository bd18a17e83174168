// Package models defines the verifier client's data: documents as the client
// sees them, journal records and offline-cache rows.
package models

// Status is the verification status shown to the user.
type Status string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusInvalid Status = "invalid"
)

// NormalizeStatus maps a server status string onto the three client
// statuses. "expiring_soon" is an older spelling of warning.
func NormalizeStatus(s string) Status {
	switch s {
	case "valid":
		return StatusValid
	case "warning", "expiring_soon":
		return StatusWarning
	default:
		return StatusInvalid
	}
}

// Valid reports whether s may be stored in the journal.
func (s Status) Valid() bool {
	return s == StatusValid || s == StatusWarning || s == StatusInvalid
}

// Color names the indicator color of a status.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

func (s Status) Color() Color {
	switch s {
	case StatusValid:
		return ColorGreen
	case StatusWarning:
		return ColorYellow
	case StatusInvalid:
		return ColorRed
	default:
		return ColorGray
	}
}

func (s Status) Label() string {
	switch s {
	case StatusValid:
		return "Документ подлинный"
	case StatusWarning:
		return "Предупреждение"
	case StatusInvalid:
		return "Документ недействителен"
	default:
		return "Неизвестный статус"
	}
}
