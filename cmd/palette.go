package cmd

import (
	"github.com/moalkhateeb/qrink/internal/kmeans"
	"github.com/moalkhateeb/qrink/pkg/colour"
	"github.com/moalkhateeb/qrink/pkg/imgproc"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var paletteKmeans bool

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.Flags().BoolVar(&paletteKmeans, "kmeans", false,
		"also report the dominant k-means cluster as a cross-check")
}

var paletteCmd = &cobra.Command{
	Use:   "palette <image>...",
	Short: "Show the ink pair extracted from one or more images",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policies := []colour.Policy{
			colour.FavourHue,
			colour.FavourDark,
			colour.FavourBrightExcludeWhite,
			colour.FavourSaturation,
		}

		failed := 0
		for _, pathname := range args {
			img, err := imgproc.Load(pathname)
			if err != nil {
				log.Warn().Err(err).Str("image", pathname).Msg("skipping")
				failed++
				continue
			}

			if viper.GetBool("enhance") {
				img = imgproc.ColourCorrect(img)
			}

			h := colour.NewHistogram(img)

			dark, light, err := colour.DarkLight(img)
			if err != nil {
				log.Warn().Err(err).Str("image", pathname).Msg("skipping")
				failed++
				continue
			}

			cmd.Printf("%s\n", pathname)
			cmd.Printf("  dark ink:    %s\n", dark)
			cmd.Printf("  light ink:   %s\n", light)

			for _, p := range policies {
				c, err := colour.Extract(h, p)
				if err != nil {
					return err
				}
				cmd.Printf("  %-12s %s\n", p.String()+":", c)
			}

			if paletteKmeans {
				c, err := kmeans.Dominant(img)
				if err != nil {
					log.Warn().Err(err).Str("image", pathname).Msg("clustering failed")
				} else {
					cmd.Printf("  %-12s %s\n", "kmeans:", c)
				}
			}
		}

		if failed == len(args) {
			return fail(3, "no readable images")
		}

		return nil
	},
}
