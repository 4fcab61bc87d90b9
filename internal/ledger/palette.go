package ledger

// ClassColors is the fixed display palette for classes. Colors are handed
// out round-robin on the current class count, cycling when exhausted.
var ClassColors = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#eab308", // yellow
	"#22c55e", // green
	"#06b6d4", // cyan
	"#3b82f6", // blue
	"#8b5cf6", // purple
	"#ec4899", // pink
}

// NextColor picks the palette color for the next class given how many
// classes currently exist.
func NextColor(classCount int) string {
	return ClassColors[classCount%len(ClassColors)]
}
