package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/today/pkg/dates"
	"tableflip.dev/today/pkg/printers"
)

func addJournal(topLevel *cobra.Command) {
	var message string
	var list bool

	cmd := &cobra.Command{
		Use:   "journal [date]",
		Short: "Read or write the journal entry for a date",
		Example: `
today journal
today journal 2024-03-08
today journal -m "slow morning, good afternoon"
today journal --list
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, _, err := loadStore()
			if err != nil {
				return err
			}

			pp := printers.PrettyPrint{}
			if list {
				entries := s.JournalEntries()
				pp.TitleWithCount("journal", len(entries))
				f := color.New(color.Faint)
				for _, e := range entries {
					fmt.Println(e.Date)
					_, _ = f.Println(strings.TrimSpace(e.Content))
				}
				return nil
			}

			date := dates.Format(timeNow())
			if len(args) == 1 {
				date = args[0]
				if _, err := dates.Parse(date); err != nil {
					return err
				}
			}

			if message != "" {
				if _, err := s.SaveJournalEntry(date, message); err != nil {
					return err
				}
			}

			pp.Title(date)
			if e, ok := s.JournalEntry(date); ok {
				fmt.Println(e.Content)
			} else {
				f := color.New(color.Faint, color.Italic)
				_, _ = f.Println(" no entry")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "Write this content as the entry.")
	cmd.Flags().BoolVar(&list, "list", false, "List all entries, newest first.")

	topLevel.AddCommand(cmd)
}
