package frozenlake

// The standard 4x4 and 8x8 boards. Layout4x4 starts at the top-left
// corner with the goal at the bottom-right and four holes in between.
var (
	Layout4x4 = mustParse([]string{
		"SFFF",
		"FHFH",
		"FFFH",
		"HFFG",
	})

	Layout8x8 = mustParse([]string{
		"SFFFFFFF",
		"FFFFFFFF",
		"FFFHFFFF",
		"FFFFFHFF",
		"FFFHFFFF",
		"FHHFFFHF",
		"FHFFHFHF",
		"FFFHFFFG",
	})
)

func mustParse(rows []string) *Layout {
	layout, err := ParseLayout(rows)
	if err != nil {
		panic(err)
	}
	return layout
}
