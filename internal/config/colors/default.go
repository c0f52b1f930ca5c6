package colors

// Default returns the default color scheme (blue accent, matching the default project color)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#3B82F6",

		Title:  "#D75FD7",
		Subtle: "#6B7280",
		Normal: "#D0D0D0",

		Success: "#10B981",
		Warning: "#F59E0B",
		Error:   "#EF4444",

		PriorityLow:    "#22C55E",
		PriorityMedium: "#EAB308",
		PriorityHigh:   "#EF4444",
	}
}
