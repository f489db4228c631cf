package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/moalkhateeb/qrink/buildinfo"
	"github.com/moalkhateeb/qrink/pkg/colour"
	"github.com/moalkhateeb/qrink/pkg/termwrap"
	"github.com/moalkhateeb/qrink/pkg/util"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute is the primary entrypoint for this CLI
func Execute() int {
	defer atExit()

	tw := termwrap.NewTermWrap(80, 24)
	rootCmd.Long = tw.Paragraph(buildinfo.App.Description + "\n\n" + buildinfo.App.FullDescription)

	rootCmd.SetOut(os.Stdout) // default is stderr

	rootCmd.PersistentFlags().StringVar(&configPath, "config", configPath, "the configuration file to load")
	rootCmd.Flags().BoolVar(&dumpConfig, "dump-config", dumpConfig, "dump configuration to stdout")

	rootCmd.PersistentFlags().String("log-level", "info", "set logging level: debug, info, warn, error")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String(logDstLabel, "stderr", "write logs to stdout, stderr, or provide a pathname")
	viper.BindPFlag(logDstLabel, rootCmd.PersistentFlags().Lookup(logDstLabel))

	rootCmd.PersistentFlags().Int("nice", 0, "the priority level of the process")
	viper.BindPFlag("nice", rootCmd.PersistentFlags().Lookup("nice"))

	rootCmd.PersistentFlags().Int("width", 1000, "width of the generated QR code in pixels")
	viper.BindPFlag("width", rootCmd.PersistentFlags().Lookup("width"))

	rootCmd.PersistentFlags().Int("height", 1000, "height of the generated QR code in pixels")
	viper.BindPFlag("height", rootCmd.PersistentFlags().Lookup("height"))

	rootCmd.PersistentFlags().Int("dpi", 300, "print resolution recorded in the PNG")
	viper.BindPFlag("dpi", rootCmd.PersistentFlags().Lookup("dpi"))

	rootCmd.PersistentFlags().String("marker", "", "pathname of SVG artwork to replace the finder markers")
	viper.BindPFlag("marker", rootCmd.PersistentFlags().Lookup("marker"))

	rootCmd.PersistentFlags().String("out", ".", "directory to write generated QR codes into")
	viper.BindPFlag("out", rootCmd.PersistentFlags().Lookup("out"))

	rootCmd.PersistentFlags().String("dark", "", "static dark ink as #rrggbb (overrides extraction)")
	viper.BindPFlag("dark", rootCmd.PersistentFlags().Lookup("dark"))

	rootCmd.PersistentFlags().String("light", "", "static light ink as #rrggbb (overrides extraction)")
	viper.BindPFlag("light", rootCmd.PersistentFlags().Lookup("light"))

	rootCmd.PersistentFlags().Bool("dynamic", true, "derive the ink pair from the companion image")
	viper.BindPFlag("dynamic", rootCmd.PersistentFlags().Lookup("dynamic"))

	rootCmd.PersistentFlags().Bool("enhance", false, "color-correct the image before palette extraction")
	viper.BindPFlag("enhance", rootCmd.PersistentFlags().Lookup("enhance"))

	var cancelCtx context.Context
	cancelCtx, cancelFunc = context.WithCancel(context.Background())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-stop
		log.Info().Str("signal", sig.String()).Msg("stopping")
		cancelFunc()
	}()

	err := rootCmd.ExecuteContext(cancelCtx)
	if err != nil {
		log.Err(err).Msg("command failed")
		cancelFunc()
		return failureCode
	}

	return 0
}

//--------------------------------------------------------------------------------
// private

const logDstLabel = "log-dst"
const minimalTimeFormat = "15:04:05.000"

var failureCode = 1
var initialized = false

var configPath = "$HOME/." + buildinfo.App.Name
var dumpConfig = false
var logF *os.File

var cancelFunc func()

var rootCmd = &cobra.Command{
	Use:               buildinfo.App.Name,
	Short:             buildinfo.App.Description,
	Version:           buildinfo.All,
	SilenceUsage:      true,
	PersistentPreRunE: atStart,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if dumpConfig {
			return dump("config", cmd.OutOrStdout())
		}
		return cmd.Help()
	},
}

func atStart(cmd *cobra.Command, _ []string) error {
	if initialized {
		return nil
	}

	initialized = true

	if filepath.Ext(configPath) != "" {
		viper.SetConfigFile(os.ExpandEnv(configPath))
	} else {
		viper.SetConfigName(filepath.Base(configPath))
		viper.SetConfigType("toml")
		viper.AddConfigPath(filepath.Dir(os.ExpandEnv(configPath)))
	}

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	} else {
		viper.OnConfigChange(func(e fsnotify.Event) {
			confLogLevel := viper.GetString("log-level")
			level, err := zerolog.ParseLevel(confLogLevel)
			if err != nil {
				log.Err(err).Str("level", confLogLevel).Msg("unable to parse new log level")
			} else {
				zerolog.SetGlobalLevel(level)
			}
		})

		viper.WatchConfig()
	}

	err = setupLogging(cmd)
	if err != nil {
		return err
	}

	if nice := viper.GetInt("nice"); nice != 0 {
		err = util.BeNice(nice)
		if err != nil {
			return err
		}
	}

	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("config")
	return nil
}

func atExit() {
	if logF != nil {
		logF.Close()
	}
}

func setupLogging(cmd *cobra.Command) error {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var logWriter io.Writer

	logDst := viper.GetString(logDstLabel)
	switch logDst {
	case "stdout":
		zerolog.TimeFieldFormat = minimalTimeFormat
		logWriter = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = minimalTimeFormat
			w.Out = os.Stdout
		})
	case "stderr":
		zerolog.TimeFieldFormat = minimalTimeFormat
		logWriter = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = minimalTimeFormat
			w.Out = os.Stderr
		})
	default:
		var err error
		logF, err = os.OpenFile(logDst, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return fail(4, "unable to open %s: %w", logDst, err)
		}

		logWriter = logF
	}

	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return fail(4, err)
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(logWriter).With().Timestamp().Logger()

	return nil
}

// inkFlag resolves an optional static ink from the named config key.
func inkFlag(key string) (*colour.RGB, error) {
	val := viper.GetString(key)
	if val == "" {
		return nil, nil
	}

	ink, err := colour.Parse(val)
	if err != nil {
		return nil, fail(2, "invalid --%s: %w", key, err)
	}

	return &ink, nil
}

func fail(code int, formatOrErr interface{}, args ...interface{}) error {
	failureCode = code
	if len(args) == 0 {
		err, ok := formatOrErr.(error)
		if ok {
			return err
		}
		return errors.New(formatOrErr.(string))
	}
	return fmt.Errorf(formatOrErr.(string), args...)
}
