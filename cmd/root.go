package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "packarr",
	Short: "packarr cli",
	Long:  `packarr cli`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("PACKARR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("filePath", cfgFile)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("storage.filePath", "packarr.sqlite")

	viper.SetDefault("manager.interItemDelay", time.Second*3)
	viper.SetDefault("manager.retention", time.Hour)
}
