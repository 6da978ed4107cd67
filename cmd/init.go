package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/unifylabs/unify/format"
)

// initCmd: unify init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new formatter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) (string, error) {
	if configurationPath == "" {
		configurationPath = format.DefaultConfigName
	}

	// Create a yaml file with the default preferences
	d, err := yaml.Marshal(format.DefaultConfig())
	if err != nil {
		return "", err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return "", err
	}

	return configurationPath, nil
}
