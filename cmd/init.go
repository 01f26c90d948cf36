package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/tasklist/internal/config"
	"github.com/marcus/tasklist/internal/db"
	"github.com/marcus/tasklist/internal/git"
	"github.com/marcus/tasklist/internal/output"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize a new task list",
	Long:    `Creates the local .todos directory and its SQLite storage.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		if _, err := os.Stat(db.Path(baseDir)); err == nil {
			output.Warning(".todos/ already exists")
			return nil
		}

		driver, _ := cmd.Flags().GetString("driver")
		if driver == "" {
			cfg, err := config.Resolve(baseDir)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			driver = cfg.Driver
		}

		database, err := db.Initialize(baseDir, driver)
		if err != nil {
			output.Error("failed to initialize storage: %v", err)
			return err
		}
		defer database.Close()

		if cmd.Flags().Changed("driver") {
			if err := config.Set(baseDir, config.KeyDriver, driver); err != nil {
				output.Error("%v", err)
				return err
			}
		}

		fmt.Println("INITIALIZED .todos/")

		// Add to .gitignore if in a git repo
		if git.IsRepo(baseDir) {
			addToGitignore(filepath.Join(baseDir, ".gitignore"))
		}

		return nil
	},
}

func addToGitignore(path string) {
	content, _ := os.ReadFile(path)
	contentStr := string(content)

	if strings.Contains(contentStr, ".todos/") {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	if len(contentStr) > 0 && !strings.HasSuffix(contentStr, "\n") {
		f.WriteString("\n")
	}
	f.WriteString(".todos/\n")
	fmt.Println("Added .todos/ to .gitignore")
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("driver", "", "SQLite driver: sqlite (pure Go) or sqlite3 (cgo)")
}
