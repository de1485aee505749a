package model

// Color is a hex display color
type Color string

const (
	ColorSuccess Color = "#10b981"
	ColorWarning Color = "#f59e0b"
	ColorError   Color = "#ef4444"
	ColorNeutral Color = "#999999"
)

// DifficultyColor maps a difficulty to its badge color.
// Levels outside the known set render neutral.
func DifficultyColor(d Difficulty) Color {
	switch d {
	case DifficultyEasy:
		return ColorSuccess
	case DifficultyMedium:
		return ColorWarning
	case DifficultyHard:
		return ColorError
	case DifficultyUnknown:
		return ColorNeutral
	}
	return ColorNeutral
}
