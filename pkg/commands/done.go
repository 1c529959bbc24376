package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/today/pkg/dates"
	"tableflip.dev/today/pkg/printers"
	"tableflip.dev/today/pkg/store"
)

func addDone(topLevel *cobra.Command) {
	var instanceDate string
	var undo bool

	cmd := &cobra.Command{
		Use:     "done <task id>",
		Aliases: []string{"complete", "do"},
		Short:   "Mark a task (or one occurrence of a recurring task) done",
		Example: `
today done 171dff69
today done 171dff69 --date 2024-03-08
today done 171dff69 --undo
`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, _, err := loadStore()
			if err != nil {
				return err
			}

			id := resolveTaskID(s, args[0])
			if id == "" {
				return errors.New("no task matches that id")
			}

			if instanceDate != "" {
				if _, err := dates.Parse(instanceDate); err != nil {
					return err
				}
			}
			t, _ := s.Task(id)
			if t.Recurrence != nil && instanceDate == "" {
				// completing a recurring template only makes sense per
				// occurrence, default to today's
				instanceDate = dates.Format(timeNow())
			}

			completed := !undo
			if _, err := s.UpdateTask(id, store.TaskPatch{Completed: &completed}, instanceDate); err != nil {
				return err
			}

			pp := printers.PrettyPrint{}
			pp.TitleWithCount("tasks", len(s.Tasks()))
			pp.Tasks(timeNow(), s.Tasks()...)
			return nil
		},
	}
	cmd.Flags().StringVar(&instanceDate, "date", "", "Occurrence date for a recurring task (YYYY-MM-DD).")
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark not done instead.")

	topLevel.AddCommand(cmd)
}

// resolveTaskID accepts a full id or an unambiguous prefix.
func resolveTaskID(s *store.Store, arg string) string {
	if _, ok := s.Task(arg); ok {
		return arg
	}
	match := ""
	for _, t := range s.Tasks() {
		if len(arg) > 0 && len(t.ID) >= len(arg) && t.ID[:len(arg)] == arg {
			if match != "" {
				return "" // ambiguous
			}
			match = t.ID
		}
	}
	return match
}
