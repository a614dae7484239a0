package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	resortID string
)

var rootCmd = &cobra.Command{
	Use:   "beachsync",
	Short: "Order and menu sync engine for resort food ordering",
	Long: `beachsync keeps the three surfaces of a resort ordering product (guest
wizard, kitchen ticket display and menu editor) consistent with each
other, with or without a reachable real-time backend. Every command works
against the device-local tier first; a configured remote store is mirrored
best-effort in the background.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.beachsync.yaml)")
	rootCmd.PersistentFlags().StringVar(&resortID, "resort", "", "resort id (default from config)")

	rootCmd.PersistentFlags().String("data-dir", "", "local cache directory")
	rootCmd.PersistentFlags().String("remote-driver", "", "remote store driver: none | redis | postgres")
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("remote.driver", rootCmd.PersistentFlags().Lookup("remote-driver"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
