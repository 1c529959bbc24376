package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/today/pkg/printers"
)

func addProjects(topLevel *cobra.Command) {
	var showID bool
	var content string

	cmd := &cobra.Command{
		Use:     "projects [id]",
		Aliases: []string{"project"},
		Short:   "List projects or show one; -m replaces its notes",
		Example: `
today projects
today projects 171dff69 -m "## plan\n- clear the garage"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, _, err := loadStore()
			if err != nil {
				return err
			}

			pp := printers.PrettyPrint{ShowID: showID}
			if len(args) == 0 {
				pp.Title("projects")
				pp.Projects(s.Projects()...)
				return nil
			}

			id := args[0]
			p, ok := s.Project(id)
			if !ok {
				for _, candidate := range s.Projects() {
					if len(candidate.ID) >= len(id) && candidate.ID[:len(id)] == id {
						p, ok = candidate, true
						break
					}
				}
			}
			if !ok {
				return errors.New("no project matches that id")
			}

			if content != "" {
				if p, err = s.SaveProjectContent(p.ID, content); err != nil {
					return err
				}
			}
			pp.Title(p.Name)
			fmt.Println(p.Content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showID, "show-ids", false, "Print project ids.")
	cmd.Flags().StringVarP(&content, "message", "m", "", "Replace the project notes with this content.")

	topLevel.AddCommand(cmd)
}
