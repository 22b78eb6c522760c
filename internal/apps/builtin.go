package apps

// builtinDefinitions is the compile-time app set. IDs are stable: scripts,
// dock ordering, and XP launch counts all key on them.
var builtinDefinitions = []Definition{
	{
		ID:          "chat",
		Title:       "Chat",
		Icon:        "💬",
		DefaultSize: [2]int{640, 480},
		Category:    "communication",
	},
	{
		ID:          "notepad",
		Title:       "Notepad",
		Icon:        "📝",
		DefaultSize: [2]int{520, 400},
		Category:    "productivity",
	},
	{
		ID:          "terminal",
		Title:       "Terminal",
		Icon:        ">_",
		DefaultSize: [2]int{720, 440},
		MinSize:     [2]int{320, 200},
		Category:    "system",
	},
	{
		ID:          "vault",
		Title:       "Vault Explorer",
		Icon:        "🔐",
		DefaultSize: [2]int{600, 460},
		Singleton:   true,
		Category:    "system",
	},
	{
		ID:          "personas",
		Title:       "Persona Viewer",
		Icon:        "🎭",
		DefaultSize: [2]int{480, 360},
		Singleton:   true,
		Category:    "system",
	},
	{
		ID:          "stats",
		Title:       "XP Tracker",
		Icon:        "📈",
		DefaultSize: [2]int{420, 320},
		Singleton:   true,
		Category:    "system",
	},
	{
		ID:          "files",
		Title:       "File Browser",
		Icon:        "📁",
		DefaultSize: [2]int{640, 440},
		Category:    "productivity",
	},
	{
		ID:          "settings",
		Title:       "Settings",
		Icon:        "⚙️",
		DefaultSize: [2]int{520, 420},
		Singleton:   true,
		Category:    "system",
	},
}
