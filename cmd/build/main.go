package build

import (
	"github.com/bmeg/sitebundle/builder"
	"github.com/bmeg/sitebundle/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var templatePath = ""
var format = ""
var summary = false

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "build <dstdir>",
	Short: "Bundle the site bucket into dstdir",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := viper.GetString("dir")
		confPath := config.ProjectPath(dir, viper.GetString("config"))
		tmplPath := templatePath
		if tmplPath != "" {
			tmplPath = config.ProjectPath(dir, tmplPath)
		}
		b, err := builder.Build(confPath, tmplPath, format, config.ProjectPath(dir, args[0]))
		if err != nil {
			return err
		}
		if summary {
			builder.WriteSummary(cmd.OutOrStdout(), b.Site)
		}
		return nil
	},
}

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&templatePath, "template", "t", templatePath, "Site template to render instead of the built in one")
	flags.StringVarP(&format, "format", "f", format, "Formatter for every placeholder: json (default) or raw")
	flags.BoolVar(&summary, "summary", summary, "Print a table of bundled files")
}
