package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chatprefs",
		Short:         "Serve the Mathemist chat shell with language and theme preferences",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newKeygenCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load(".env")

			config, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			logger, err := newLogger(config.Log, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
			if err != nil {
				return err
			}

			server, err := newServer(config, logger, BuildKey)
			if err != nil {
				return err
			}
			return server.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "config.json", "path to the JSON config file")
	return cmd
}
