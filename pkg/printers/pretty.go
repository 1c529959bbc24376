package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/today/pkg/dates"
	"tableflip.dev/today/pkg/glyph"
	"tableflip.dev/today/pkg/model"
	"tableflip.dev/today/pkg/occur"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69-f8b9-9dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" item")
	default:
		_, _ = c.Println(" items")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Print(" none\n\n")
}

func (pp *PrettyPrint) id(id string) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	_, _ = y.Print(short)
	_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(short)))
}

func taskMark(t *model.Task, now time.Time) string {
	switch {
	case t.Completed:
		return glyph.Done
	case t.Recurrence != nil:
		return glyph.Recurring
	case dates.IsOverdue(t.DueDate, now):
		return glyph.Overdue
	default:
		return glyph.Open
	}
}

// Tasks prints stored templates, striking out completed ones.
func (pp *PrettyPrint) Tasks(now time.Time, tasks ...model.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	t := color.New()
	f := color.New(color.Faint)

	for i := range tasks {
		task := &tasks[i]
		if pp.ShowID {
			pp.id(task.ID)
		}
		text := task.Text
		if task.Completed {
			text = glyph.Strike(text)
		}
		_, _ = t.Printf("%s %s", taskMark(task, now), text)
		if task.DueDate != "" {
			_, _ = f.Printf("  (%s)", task.DueDate)
		}
		_, _ = t.Println("")
	}
	_, _ = t.Println("")
}

func eventTime(e *model.Event) string {
	if e.AllDay {
		return "all day"
	}
	endHour, endMinutes := e.End()
	return fmt.Sprintf("%02d:%02d-%02d:%02d", e.Hour, e.Minutes, endHour, endMinutes)
}

// Agenda prints the projected occurrences for one date: events first in
// a time table, then task instances.
func (pp *PrettyPrint) Agenda(date string, tasks []occur.TaskInstance, events []occur.EventInstance, now time.Time) {
	pp.Title(date)

	if len(events) == 0 && len(tasks) == 0 {
		pp.none()
		return
	}

	if len(events) > 0 {
		tbl := uitable.New()
		tbl.Separator = "  "
		for i := range events {
			e := &events[i]
			mark := glyph.Event
			if e.AllDay {
				mark = glyph.AllDay
			}
			row := []interface{}{mark, eventTime(&e.Event), e.Text}
			if e.Location != "" {
				row = append(row, "@ "+e.Location)
			}
			tbl.AddRow(row...)
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
	}

	t := color.New()
	for i := range tasks {
		inst := &tasks[i]
		if pp.ShowID {
			pp.id(inst.TemplateID)
		}
		text := inst.Text
		mark := glyph.Open
		if inst.Completed {
			mark = glyph.Done
			text = glyph.Strike(text)
		} else if inst.ParentTaskID != "" {
			mark = glyph.Recurring
		}
		_, _ = t.Printf("%s %s\n", mark, text)
	}
	_, _ = t.Println("")
}

// Projects prints the project list with last-touched times.
func (pp *PrettyPrint) Projects(projects ...model.Project) {
	if len(projects) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for i := range projects {
		p := &projects[i]
		if pp.ShowID {
			tbl.AddRow(p.ID[:8], p.Name, p.UpdatedAt.String())
		} else {
			tbl.AddRow(p.Name, p.UpdatedAt.String())
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Glyphs prints the marker legend.
func (pp *PrettyPrint) Glyphs(glyphs ...glyph.Glyph) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("key", "symbol", "meaning")
	for _, g := range glyphs {
		tbl.AddRow(g.Key, g.Symbol, g.Meaning)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
