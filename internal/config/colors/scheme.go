package colors

// ColorScheme defines the colors used by human-readable CLI output
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset" toml:"preset"`

	// Primary accent color (used for headings, field labels, borders)
	Accent string `yaml:"accent" toml:"accent"`

	// Text colors
	Title  string `yaml:"title" toml:"title"`
	Subtle string `yaml:"subtle" toml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal" toml:"normal"`

	// Outcome colors
	Success string `yaml:"success" toml:"success"`
	Warning string `yaml:"warning" toml:"warning"`
	Error   string `yaml:"error" toml:"error"`

	// Priority badges
	PriorityLow    string `yaml:"priority_low" toml:"priority_low"`
	PriorityMedium string `yaml:"priority_medium" toml:"priority_medium"`
	PriorityHigh   string `yaml:"priority_high" toml:"priority_high"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
// If preset is specified, loads that preset first, then overrides with custom values
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	c.MergeFrom(*preset, false)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}
}

// MergeFrom copies colors from other. With override set, non-empty values in other win;
// otherwise only empty fields of c are filled.
func (c *ColorScheme) MergeFrom(other ColorScheme, override bool) {
	pick := func(dst *string, src string) {
		if src == "" {
			return
		}
		if override || *dst == "" {
			*dst = src
		}
	}

	pick(&c.Accent, other.Accent)
	pick(&c.Title, other.Title)
	pick(&c.Subtle, other.Subtle)
	pick(&c.Normal, other.Normal)
	pick(&c.Success, other.Success)
	pick(&c.Warning, other.Warning)
	pick(&c.Error, other.Error)
	pick(&c.PriorityLow, other.PriorityLow)
	pick(&c.PriorityMedium, other.PriorityMedium)
	pick(&c.PriorityHigh, other.PriorityHigh)
}
