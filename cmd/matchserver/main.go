package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lamyinia/mahjongmatch/internal/app"
	"github.com/lamyinia/mahjongmatch/internal/config"
	"github.com/lamyinia/mahjongmatch/internal/logging"
)

var (
	configFile string
	logLevel   string
	identifier string
)

var rootCmd = &cobra.Command{
	Use:   "matchserver",
	Short: "mahjong match server",
	Long:  `matchserver deals and referees four-player mahjong matches over websocket`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Load(configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logging.Init(identifier, logLevel)
		logging.Info("config loaded: %+v", config.Conf)

		if err := app.Run(context.Background()); err != nil {
			logging.Error("matchserver: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "resource", "resource/application.yml", "resource file")
	rootCmd.Flags().StringVar(&logLevel, "logLevel", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&identifier, "identifier", "matchserver", "node identifier used as the log prefix")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("matchserver: %v", err)
		os.Exit(1)
	}
}
