package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yuzeguitarist/qrgen/internal/app"
	"github.com/yuzeguitarist/qrgen/internal/qr"
	"gopkg.in/yaml.v3"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the accepted QR parameters with defaults and ranges",
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")
		p := qr.Describe()
		var (
			b   []byte
			err error
		)
		if asYAML {
			b, err = yaml.Marshal(&p)
		} else {
			b, err = json.MarshalIndent(p, "", "  ")
			b = append(b, '\n')
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration (file, environment, flags)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("config")
		b, err := cfg.YAML()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), app.Color("# config: "+path, app.ColorTitle))
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

func init() {
	paramsCmd.Flags().Bool("yaml", false, "print YAML instead of JSON")
	addOverrideFlags(configCmd)
}
