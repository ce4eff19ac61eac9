package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/talkincode/productcards/config"
	"github.com/talkincode/productcards/internal/app"
	"github.com/talkincode/productcards/internal/catalog"
)

// newRootCmd builds the productcards command tree
func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "productcards",
		Short: "Product card manager",
		Long: `productcards keeps a small catalog of products persisted in a local
key-value store and serves it as a card grid with an admin API.

Run "productcards serve" to start the web server, or use the
list/add/edit/delete/export commands to work on the catalog directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "productcards.yml", "path to the yaml config file")

	opener := func(prompt catalog.Prompter) (*app.Application, error) {
		return openApp(configFile, prompt)
	}

	rootCmd.AddCommand(
		newServeCmd(opener),
		newListCmd(opener),
		newAddCmd(opener),
		newEditCmd(opener),
		newDeleteCmd(opener),
		newExportCmd(opener),
	)
	return rootCmd
}

type appOpener func(prompt catalog.Prompter) (*app.Application, error)

// openApp loads configuration and initializes the application
func openApp(configFile string, prompt catalog.Prompter) (*app.Application, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	a := app.NewApplication(cfg, prompt)
	if err := a.Init(cfg); err != nil {
		return nil, err
	}
	return a, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
