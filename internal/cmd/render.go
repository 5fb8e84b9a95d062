package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yuzeguitarist/qrgen/internal/app"
	"github.com/yuzeguitarist/qrgen/internal/qr"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a QR code to a file (PNG or SVG by extension or --format)",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return fmt.Errorf("--out required (use - for stdout)")
		}
		o := qr.DefaultOptions("")
		o.Text, _ = cmd.Flags().GetString("text")
		o.BoxSize, _ = cmd.Flags().GetInt("box-size")
		o.Border, _ = cmd.Flags().GetInt("border")
		o.Fill, _ = cmd.Flags().GetString("fill")
		o.Back, _ = cmd.Flags().GetString("back")
		if f, _ := cmd.Flags().GetString("format"); f != "" {
			o.Format = qr.Format(f)
		} else if out != "-" {
			o.Format = qr.FormatFromPath(out)
		}

		img, err := qr.Render(o)
		if err != nil {
			var ve *qr.ValidationError
			if errors.As(err, &ve) {
				for _, f := range ve.Fields {
					fmt.Fprintln(cmd.ErrOrStderr(), app.Color(f.Field+":", app.ColorWarn), f.Message)
				}
			}
			return err
		}
		defer img.Close()

		if out == "-" {
			_, err := img.WriteTo(cmd.OutOrStdout())
			return err
		}
		if err := app.AtomicWriteFile(out, 0644, img.Bytes()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote:", filepath.Clean(out))
		return nil
	},
}

func init() {
	renderCmd.Flags().String("text", "", "text or URL to encode")
	renderCmd.Flags().String("out", "", "output file path (.png or .svg), - for stdout")
	renderCmd.Flags().Int("box-size", qr.DefaultBoxSize, "pixels per module")
	renderCmd.Flags().Int("border", qr.DefaultBorder, "quiet zone width in modules")
	renderCmd.Flags().String("fill", qr.DefaultFill, "module color")
	renderCmd.Flags().String("back", qr.DefaultBack, "background color")
	renderCmd.Flags().String("format", "", "png or svg (default from --out extension)")
}
