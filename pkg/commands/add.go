package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/today/pkg/commands/options"
	"tableflip.dev/today/pkg/dates"
	"tableflip.dev/today/pkg/model"
	"tableflip.dev/today/pkg/printers"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something",
		Example: `
today add task water the plants --due 2024-03-01 --every weekly --on 5
today add event standup --date 2024-03-04 --hour 9 --end-hour 10
today add project spring cleaning
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAddTask(cmd)
	addAddEvent(cmd)
	addAddProject(cmd)

	topLevel.AddCommand(cmd)
}

func addAddTask(parent *cobra.Command) {
	ro := &options.RecurrenceOptions{}
	var due string
	var text string

	cmd := &cobra.Command{
		Use:   "task <text>",
		Short: "Add a task",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the task text")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			s, _, err := loadStore()
			if err != nil {
				return err
			}
			rec, err := ro.Pattern()
			if err != nil {
				return err
			}
			if rec != nil && due == "" {
				return errors.New("a recurring task needs --due as its anchor date")
			}
			if due != "" {
				if _, err := dates.Parse(due); err != nil {
					return err
				}
			}
			if _, err := s.AddTask(model.Task{Text: text, DueDate: due, Recurrence: rec}); err != nil {
				return err
			}

			pp := printers.PrettyPrint{}
			pp.TitleWithCount("tasks", len(s.Tasks()))
			pp.Tasks(timeNow(), s.Tasks()...)
			return nil
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD); the anchor date when the task repeats.")
	ro.AddFlags(cmd)
	parent.AddCommand(cmd)
}

func addAddEvent(parent *cobra.Command) {
	ro := &options.RecurrenceOptions{}
	var (
		date       string
		hour       int
		minutes    int
		endHour    int
		endMinutes int
		allDay     bool
		location   string
		text       string
	)

	cmd := &cobra.Command{
		Use:   "event <text>",
		Short: "Add a calendar event",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the event text")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := loadStore()
			if err != nil {
				return err
			}
			if date == "" {
				date = dates.Format(timeNow())
			}
			if _, err := dates.Parse(date); err != nil {
				return err
			}
			rec, err := ro.Pattern()
			if err != nil {
				return err
			}

			ev := model.Event{
				Text:       text,
				Date:       date,
				Hour:       hour,
				Minutes:    minutes,
				AllDay:     allDay,
				Location:   location,
				Recurrence: rec,
			}
			if cmd.Flags().Changed("end-hour") {
				ev.EndHour = &endHour
			}
			if cmd.Flags().Changed("end-minutes") {
				ev.EndMinutes = &endMinutes
			}
			if _, err := s.AddEvent(ev); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD), default today.")
	cmd.Flags().IntVar(&hour, "hour", 9, "Start hour, 0-23.")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Start minutes, 0-59.")
	cmd.Flags().IntVar(&endHour, "end-hour", 0, "End hour; default is one hour after the start.")
	cmd.Flags().IntVar(&endMinutes, "end-minutes", 0, "End minutes.")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "All-day event; time flags are ignored.")
	cmd.Flags().StringVar(&location, "location", "", "Where the event happens.")
	ro.AddFlags(cmd)
	parent.AddCommand(cmd)
}

func addAddProject(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "project <name>",
		Short: "Add a project notes document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, _, err := loadStore()
			if err != nil {
				return err
			}
			if _, err := s.AddProject(strings.Join(args, " ")); err != nil {
				return err
			}
			pp := printers.PrettyPrint{}
			pp.Title("projects")
			pp.Projects(s.Projects()...)
			return nil
		},
	}
	parent.AddCommand(cmd)
}
