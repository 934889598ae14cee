package add_env

import (
	"github.com/bmeg/sitebundle/config"
	"github.com/bmeg/sitebundle/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "add-env <name>",
	Short: "Add an environment to the config from env.template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confPath := config.ProjectPath(viper.GetString("dir"), viper.GetString("config"))
		conf, err := config.Load(confPath)
		if err != nil {
			return err
		}
		if err := conf.AddEnvironment(args[0]); err != nil {
			return err
		}
		if err := config.Save(confPath, conf.Doc); err != nil {
			return err
		}
		logger.Info("environment added", "name", args[0], "config", confPath)
		return nil
	},
}
