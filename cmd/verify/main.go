package verify

import (
	"fmt"
	"path/filepath"

	"github.com/bmeg/sitebundle/builder"
	"github.com/bmeg/sitebundle/config"
	"github.com/bmeg/sitebundle/logger"
	"github.com/bmeg/sitebundle/util"
	"github.com/bmeg/sitebundle/verify"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "verify <dstdir>",
	Short: "Load a built site script and check its content against the manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(config.ProjectPath(viper.GetString("dir"), args[0]), builder.ScriptName)
		src, err := util.ReadFile(path)
		if err != nil {
			return err
		}
		report, err := verify.Script(cmd.Context(), path, src)
		if err != nil {
			return err
		}
		logger.Info("script verified", "path", path, "entries", report.Entries)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries, %d distinct, %s\n",
			path, report.Entries, report.Distinct, humanize.Bytes(report.Bytes))
		return nil
	},
}
