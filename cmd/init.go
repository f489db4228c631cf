package cmd

import (
	_ "embed"
	"path/filepath"

	"github.com/moalkhateeb/qrink/buildinfo"
	"github.com/moalkhateeb/qrink/pkg/util"

	"github.com/spf13/cobra"
)

//go:embed qrink.toml
var starterConfig []byte

//go:embed marker.svg
var starterMarker []byte

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter config file and example marker artwork",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		confPath := filepath.Join(dir, buildinfo.App.Name+".toml")
		err := util.Extract(confPath, starterConfig, buildinfo.App)
		if err != nil {
			return err
		}

		markerPath := filepath.Join(dir, "marker.svg")
		err = util.Extract(markerPath, starterMarker, nil)
		if err != nil {
			return err
		}

		cmd.Printf("Starter files ready: %s, %s\n", confPath, markerPath)
		cmd.Printf("Run with: %s batch --config %s\n", buildinfo.App.Name, confPath)
		return nil
	},
}
