package cmd

import (
	"github.com/moalkhateeb/qrink/internal/batch"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateImage string

func init() {
	rootCmd.AddCommand(generateCmd)

	rootCmd.PersistentFlags().String("url", "", "the URL to encode")
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))

	generateCmd.Flags().StringVar(&generateImage, "image", "",
		"companion image the ink pair is extracted from")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one QR code",
	Long: "Generates a single QR code for the configured URL. With an image, the " +
		"dark and light inks are extracted from it; without one, the code is " +
		"black on white unless static inks are set.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if viper.GetString("url") == "" {
			return fail(2, "no URL to encode: set --url or the url config key")
		}

		cfg, err := generationConfig()
		if err != nil {
			return err
		}

		gen, err := batch.New(cfg)
		if err != nil {
			return err
		}

		out, err := gen.GenerateOne(batch.Job{
			ImagePath: generateImage,
			URL:       viper.GetString("url"),
		})
		if err != nil {
			return err
		}

		cmd.Println(out)
		return nil
	},
}

// generationConfig assembles the pipeline settings shared by the generate and
// batch commands from the resolved configuration.
func generationConfig() (batch.Config, error) {
	cfg := batch.Config{
		URL:        viper.GetString("url"),
		OutDir:     viper.GetString("out"),
		MarkerPath: viper.GetString("marker"),
		Width:      viper.GetInt("width"),
		Height:     viper.GetInt("height"),
		DPI:        viper.GetInt("dpi"),
		Dynamic:    viper.GetBool("dynamic"),
		Enhance:    viper.GetBool("enhance"),
	}

	var err error
	cfg.Dark, err = inkFlag("dark")
	if err != nil {
		return cfg, err
	}

	cfg.Light, err = inkFlag("light")
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}
