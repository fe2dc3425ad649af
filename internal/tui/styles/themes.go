package styles

// NewNimbusTheme is the default dark theme.
func NewNimbusTheme() *Theme {
	return &Theme{
		Name:   "nimbus",
		IsDark: true,

		Primary:   ParseHex("#5B8DEF"),
		Secondary: ParseHex("#8E7CC3"),
		Accent:    ParseHex("#7FD1F7"),

		BgBase:    ParseHex("#151518"),
		BgSubtle:  ParseHex("#26262B"),
		BgOverlay: ParseHex("#0B0B0D"),

		FgBase:     ParseHex("#E4E4E7"),
		FgMuted:    ParseHex("#A1A1AA"),
		FgSubtle:   ParseHex("#71717A"),
		FgInverted: ParseHex("#0B0B0D"),

		Border:      ParseHex("#3F3F46"),
		BorderFocus: ParseHex("#5B8DEF"),

		Success: ParseHex("#22C55E"),
		Error:   ParseHex("#EF4444"),
		Warning: ParseHex("#F59E0B"),
		Info:    ParseHex("#38BDF8"),

		MarkdownStyle: "dracula",
	}
}

// NewLightTheme is a light variant.
func NewLightTheme() *Theme {
	return &Theme{
		Name:   "light",
		IsDark: false,

		Primary:   ParseHex("#2563EB"),
		Secondary: ParseHex("#7C3AED"),
		Accent:    ParseHex("#0369A1"),

		BgBase:    ParseHex("#FBFBFB"),
		BgSubtle:  ParseHex("#E4E4E7"),
		BgOverlay: ParseHex("#F4F4F5"),

		FgBase:     ParseHex("#18181B"),
		FgMuted:    ParseHex("#52525B"),
		FgSubtle:   ParseHex("#A1A1AA"),
		FgInverted: ParseHex("#FFFFFF"),

		Border:      ParseHex("#D4D4D8"),
		BorderFocus: ParseHex("#2563EB"),

		Success: ParseHex("#16A34A"),
		Error:   ParseHex("#DC2626"),
		Warning: ParseHex("#D97706"),
		Info:    ParseHex("#0284C7"),

		MarkdownStyle: "light",
	}
}
