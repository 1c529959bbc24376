package glyph

import "fmt"

// Glyph maps a marker shown next to a task or event to its meaning.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

const (
	Open      = "●"
	Done      = "✘"
	Recurring = "↻"
	Overdue   = "!"
	Event     = "○"
	AllDay    = "◌"
	Note      = "⁃"
)

func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Key: "+", Symbol: Open, Meaning: "open task"},
		{Key: "x", Symbol: Done, Meaning: "completed task"},
		{Key: "r", Symbol: Recurring, Meaning: "recurring template"},
		{Key: "!", Symbol: Overdue, Meaning: "overdue"},
		{Key: "o", Symbol: Event, Meaning: "timed event"},
		{Key: "a", Symbol: AllDay, Meaning: "all-day event"},
		{Key: "-", Symbol: Note, Meaning: "journal note"},
	}
}
