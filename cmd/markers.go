package cmd

import (
	"github.com/moalkhateeb/qrink/pkg/qrgen"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(markersCmd)
}

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Show the finder-marker pixel regions for the configured URL",
	Long: "Encodes the URL and prints where the three finder markers land at the " +
		"configured width, for sizing custom marker artwork.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		url := viper.GetString("url")
		if url == "" {
			return fail(2, "no URL to encode: set --url or the url config key")
		}

		code, err := qrgen.New(url, viper.GetInt("width"), viper.GetInt("height"), viper.GetInt("dpi"))
		if err != nil {
			return err
		}

		tl, tr, bl, err := code.LocateMarkers()
		if err != nil {
			return err
		}

		cmd.Printf("modules:      %dx%d at %dpx each\n", code.Dimension(), code.Dimension(), code.Scale())
		cmd.Printf("rendered:     %dpx square before resizing\n", code.Dimension()*code.Scale())
		cmd.Printf("top-left:     %s\n", tl)
		cmd.Printf("top-right:    %s\n", tr)
		cmd.Printf("bottom-left:  %s\n", bl)
		cmd.Printf("marker size:  %dx%d\n", tl.Dx(), tl.Dy())

		return nil
	},
}
