package commands

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/today/pkg/logging"
	"tableflip.dev/today/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "today",
		Short: base.Wrap80("Tasks, calendar, and journal on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addGet(topLevel)
	addAgenda(topLevel)
	addDone(topLevel)
	addJournal(topLevel)
	addProjects(topLevel)
	addSync(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
}

func loadStore() (*store.Store, *zap.Logger, error) {
	log := logging.New(logging.Config{
		Level:    viper.GetString("log.level"),
		Encoding: viper.GetString("log.encoding"),
	})
	p, err := store.Load(nil)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(p, log)
	if err != nil {
		return nil, nil, err
	}
	return s, log, nil
}

func timeNow() time.Time {
	return time.Now()
}
