package site_manifest

import (
	"fmt"

	"github.com/bmeg/sitebundle/builder"
	"github.com/bmeg/sitebundle/config"
	"github.com/bmeg/sitebundle/manifest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"
)

var summary = false

// Record is the YAML document printed by the command.
type Record struct {
	Bucket  string                 `json:"bucket"`
	Files   []manifest.FileInfo    `json:"files"`
	Summary manifest.SummaryRecord `json:"summary"`
}

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "manifest",
	Short: "List the files a build would bundle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load(config.ProjectPath(viper.GetString("dir"), viper.GetString("config")))
		if err != nil {
			return err
		}
		site, err := conf.Site()
		if err != nil {
			return err
		}
		bucket := conf.Resolve(site.Bucket)
		s, err := builder.GenerateSite(bucket)
		if err != nil {
			return err
		}

		if summary {
			builder.WriteSummary(cmd.OutOrStdout(), s)
			return nil
		}
		out, err := yaml.Marshal(Record{Bucket: site.Bucket, Files: s.Files, Summary: s.Summary()})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s", out)
		return nil
	},
}

func init() {
	flags := Cmd.Flags()
	flags.BoolVar(&summary, "summary", summary, "Print a table instead of YAML")
}
