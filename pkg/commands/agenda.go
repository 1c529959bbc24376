package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/today/pkg/dates"
	"tableflip.dev/today/pkg/occur"
	"tableflip.dev/today/pkg/printers"
)

func addAgenda(topLevel *cobra.Command) {
	var showID bool
	var days int

	cmd := &cobra.Command{
		Use:   "agenda [date]",
		Short: "Show the tasks and events occurring on a date or range",
		Example: `
today agenda
today agenda 2024-03-08
today agenda --days 7
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, _, err := loadStore()
			if err != nil {
				return err
			}

			start := dates.Format(timeNow())
			if len(args) == 1 {
				start = args[0]
			}
			from, err := dates.Parse(start)
			if err != nil {
				return err
			}
			if days < 1 {
				days = 1
			}

			tasks := s.Tasks()
			events := s.Events()
			pp := printers.PrettyPrint{ShowID: showID}
			for i := 0; i < days; i++ {
				date := dates.Format(from.AddDate(0, 0, i))
				pp.Agenda(date,
					occur.TasksOn(tasks, date),
					occur.EventsOn(events, date),
					timeNow())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showID, "show-ids", false, "Print template ids.")
	cmd.Flags().IntVar(&days, "days", 1, "Number of days to show.")

	topLevel.AddCommand(cmd)
}
