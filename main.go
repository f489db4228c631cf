// Command qrink generates QR codes with image-matched inks and custom finder
// marker artwork. See `qrink --help` for the available subcommands.
package main

import (
	"os"

	"github.com/moalkhateeb/qrink/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
