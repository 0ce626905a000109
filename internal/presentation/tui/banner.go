package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the cardtrail ASCII art banner with its tagline.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Teal-to-blue gradient, one row per line of the wordmark.
	s1 := termenv.String("                    _ _             _ _ ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("  ___ __ _ _ __ __| | |_ _ __ __ _(_) |").Foreground(p.Color("#22d3ee"))
	s3 := termenv.String(" / __/ _` | '__/ _` | __| '__/ _` | | |").Foreground(p.Color("#38bdf8"))
	s4 := termenv.String("| (_| (_| | | | (_| | |_| | | (_| | | |").Foreground(p.Color("#60a5fa"))
	s5 := termenv.String(" \\___\\__,_|_|  \\__,_|\\__|_|  \\__,_|_|_|").Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
	fmt.Printf("Trello board history → SankeyMATIC  (v%s)\n\n", version)
}

// PrintNotice prints a highlighted informational line.
func PrintNotice(format string, args ...any) {
	p := termenv.ColorProfile()
	msg := termenv.String(fmt.Sprintf(format, args...)).Foreground(p.Color("#fbbf24"))
	fmt.Println(msg)
}
