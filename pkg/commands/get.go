package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/today/pkg/model"
	"tableflip.dev/today/pkg/printers"
)

func addGet(topLevel *cobra.Command) {
	var showID bool
	var showDone bool

	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"list", "ls"},
		Short:   "List tasks",
		Example: `
today get
today get --done --show-ids
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, _, err := loadStore()
			if err != nil {
				return err
			}

			all := s.Tasks()
			open := make([]model.Task, 0, len(all))
			done := make([]model.Task, 0)
			for _, t := range all {
				if t.Completed {
					done = append(done, t)
					continue
				}
				open = append(open, t)
			}

			pp := printers.PrettyPrint{ShowID: showID}
			pp.TitleWithCount("open", len(open))
			pp.Tasks(timeNow(), open...)
			if showDone {
				pp.TitleWithCount("done", len(done))
				pp.Tasks(timeNow(), done...)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showID, "show-ids", false, "Print task ids.")
	cmd.Flags().BoolVar(&showDone, "done", false, "Also list completed tasks.")

	topLevel.AddCommand(cmd)
}
