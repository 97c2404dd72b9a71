package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const sessionKeyLength = 64

var errTerminalOutput = errors.New("refusing to write a binary key to a terminal; use --out or redirect stdout")

func newKeygenCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a session key for Session.KeyLocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "" {
				return writeSessionKeyFile(out)
			}
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return errTerminalOutput
			}
			return writeSessionKey(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write the key to")
	return cmd
}

func writeSessionKey(w io.Writer) error {
	key := securecookie.GenerateRandomKey(sessionKeyLength)
	if key == nil {
		return errors.New("generating session key")
	}
	if _, err := w.Write(key); err != nil {
		return fmt.Errorf("writing session key: %w", err)
	}
	return nil
}

func writeSessionKeyFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("creating key file '%s': %w", path, err)
	}
	if err := writeSessionKey(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
