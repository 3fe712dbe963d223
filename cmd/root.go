package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	ehc "envelope_heat_calc/envelope_heat_calc"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "envelope_heat_calc",
	Short: "Transient heat transfer through building envelopes",
	Long: `envelope_heat_calc - building envelope heat transfer calculator

Computes transient conduction through walls and fenestrations discretized
into thermal networks, gas cavity convection, multi-layer glazing optics
and the resulting zone air temperatures for given weather and HVAC inputs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return setupLogging(cfg.LogLevel)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "設定ファイル（ini）")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "", "ログレベル（debug, info, warn, error）")
}

// 設定ファイルを読み込み、--log を反映する。
func loadConfig() (ehc.Config, error) {
	cfg, err := ehc.LoadConfig(configPath)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", configPath, err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func setupLogging(level string) error {
	lv, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lv)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}
