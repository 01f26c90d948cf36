package cmd

import (
	"fmt"

	"github.com/marcus/tasklist/internal/config"
	"github.com/marcus/tasklist/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set configuration",
	Long: `Reads and writes settings. Values set here go to .todos/config.json
and override the user defaults in ~/.config/tasklist/config.toml.

Keys:
  driver        sqlite (pure Go) or sqlite3 (cgo)
  status_delay  how long board status messages stay, e.g. 3s
  log_level     debug, info, warn, error`,
	GroupID: "system",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := config.Get(getBaseDir(), args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Println(v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a value in the project config",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(getBaseDir(), args[0], args[1]); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("%s = %s", args[0], args[1])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every key with its effective value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, key := range config.Keys() {
			v, err := config.Get(getBaseDir(), key)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			fmt.Printf("%s = %s\n", key, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}
