package cmd

import (
	"runtime"

	"github.com/moalkhateeb/qrink/internal/batch"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("in", ".", "directory of companion images")
	viper.BindPFlag("in", batchCmd.Flags().Lookup("in"))

	batchCmd.Flags().String("batch", "", "CSV batch file of image,url rows (paths relative to --in)")
	viper.BindPFlag("batch", batchCmd.Flags().Lookup("batch"))

	batchCmd.Flags().Int("workers", runtime.NumCPU(), "maximum generations in flight")
	viper.BindPFlag("workers", batchCmd.Flags().Lookup("workers"))
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate QR codes for a whole directory or CSV batch file",
	Long: "Generates one QR code per image. Without a batch file, every supported " +
		"image in the input directory is paired with the configured URL; with one, " +
		"each CSV row names an image and the URL to encode for it.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := generationConfig()
		if err != nil {
			return err
		}

		cfg.InputDir = viper.GetString("in")
		cfg.BatchPath = viper.GetString("batch")
		cfg.Workers = viper.GetInt("workers")

		gen, err := batch.New(cfg)
		if err != nil {
			return err
		}

		results, err := gen.Run(cmd.Context())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			return fail(3, "no images to process")
		}

		ok := 0
		for _, res := range results {
			if res.Err == nil {
				ok++
			}
		}

		cmd.Printf("Generated %d of %d QR codes\n", ok, len(results))
		for i, res := range results {
			if res.Err == nil {
				cmd.Printf("%3d- %s\n", i+1, res.OutPath)
			} else {
				cmd.Printf("%3d- %s: %s\n", i+1, res.ImagePath, res.Err)
			}
		}

		if ok == 0 {
			return fail(3, "all %d generations failed", len(results))
		}

		return nil
	},
}
