package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconRescan   = "⟳"
	IconFolder   = "📁"
	IconWarning  = "⚠"
)

// Layout sizing
const (
	WindowWidth  float32 = 820
	WindowHeight float32 = 680

	OffsetEntryWidth float32 = 96
	CheckLabelWidth  float32 = 150
	PortSelectWidth  float32 = 240
	ConsoleMinHeight float32 = 220
	LogoSize         float32 = 32
)

// Console behavior
const (
	// ConsoleMaxLines bounds the text kept in the console view
	ConsoleMaxLines = 2000
)

// File dialog filters
var (
	BinaryFilter  = []string{".bin"}
	ProjectFilter = []string{".ini"}
)
