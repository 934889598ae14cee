package cmd

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/bmeg/sitebundle/cmd/add_env"
	"github.com/bmeg/sitebundle/cmd/build"
	"github.com/bmeg/sitebundle/cmd/site_manifest"
	"github.com/bmeg/sitebundle/cmd/verify"
	"github.com/bmeg/sitebundle/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:           "sitebundle",
	Short:         "Bundle a static site into a single worker script",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		logger.InitWriter(cmd.ErrOrStderr(), viper.GetBool("verbose"), viper.GetBool("log-json"))
		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringP("dir", "C", ".", "Project directory")
	flags.String("config", "wrangler.toml", "Config file, relative to the project directory")
	flags.BoolP("verbose", "v", false, "Debug logging")
	flags.Bool("log-json", false, "Log as JSON")

	for _, name := range []string{"dir", "config", "verbose", "log-json"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
	viper.SetEnvPrefix("SITEBUNDLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	RootCmd.AddCommand(build.Cmd)
	RootCmd.AddCommand(add_env.Cmd)
	RootCmd.AddCommand(site_manifest.Cmd)
	RootCmd.AddCommand(verify.Cmd)
	RootCmd.AddCommand(genBashCompletionCmd)
}

var genBashCompletionCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completions file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RootCmd.GenBashCompletion(cmd.OutOrStdout())
	},
}
