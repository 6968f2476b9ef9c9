// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line surface of xgtsh. The shell's
// verbs live inside the interactive interpreter; this package only
// parses process flags, establishes the server connection, and selects
// between the interactive loop and the three batch modes.
package cmd

import (
	"fmt"
	"os"

	"xgtsh/cli/internal/config"
	"xgtsh/cli/internal/keychain"
	"xgtsh/cli/internal/logging"
	"xgtsh/cli/internal/shell"
	"xgtsh/cli/internal/xgt"
	"xgtsh/cli/internal/xgt/grpcclient"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	flagHost      string
	flagPort      int
	flagUser      string
	flagPassword  string
	flagSavePW    bool
	flagVerbose   bool
	flagDebug     bool
	flagQuery     string
	flagCommand   string
	flagFile      string
	flagNamespace string
	flagFormat    string
)

// rootCmd is the single top-level command. Without a mode flag it
// enters the interactive loop.
var rootCmd = &cobra.Command{
	Use:   "xgtsh",
	Short: "Command-line console for the xGT graph server",
	Long: `xgtsh is an interactive console for a remote xGT graph-database server:
run queries, inspect jobs, manage namespaces and frames, and administer
server configuration.

Without -q, -c, or -f it enters the interactive loop (prompt xGT>> ).
Mode precedence when several are given: query > command > file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaults := config.Defaults()
	rootCmd.Flags().StringVar(&flagHost, "host", defaults.Host, "connect to this host name")
	rootCmd.Flags().IntVarP(&flagPort, "port", "p", defaults.Port, "connect to this port")
	rootCmd.Flags().StringVarP(&flagUser, "user", "u", defaults.User, "username to use for the connection")
	rootCmd.Flags().StringVar(&flagPassword, "pw", "", "password to use for the connection (optional; falls back to the OS keychain)")
	rootCmd.Flags().BoolVar(&flagSavePW, "save-pw", false, "store the password in the OS keychain after a successful connect")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "show detailed information")
	rootCmd.Flags().BoolVarP(&flagDebug, "debug", "d", false, "show debug information")
	rootCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "execute a single query and exit")
	rootCmd.Flags().StringVarP(&flagCommand, "command", "c", "", "execute a single command and exit")
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "execute commands from a file")
	rootCmd.Flags().StringVarP(&flagNamespace, "namespace", "n", "", "set the default namespace before executing commands")
	rootCmd.Flags().StringVar(&flagFormat, "format", "table", "output format for query results (table, json, csv)")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	password := flagPassword
	if password == "" {
		if km, err := keychain.GetManager(); err == nil {
			if stored, err := km.LoadServerPassword(flagUser); err == nil {
				password = stored
			}
		}
	}

	var svc xgt.Service
	if flagVerbose {
		pterm.Printfln("Trying to connect to server %s@%s:%d", flagUser, flagHost, flagPort)
	}
	client, err := grpcclient.Connect(ctx, grpcclient.Options{
		Host:     flagHost,
		Port:     flagPort,
		User:     flagUser,
		Password: password,
	})
	if err != nil {
		pterm.Println("Unable to connect to xgtd server:")
		pterm.Println(logging.FormatConnectError(err))
	} else {
		svc = client
		defer client.Close()
		if flagSavePW && flagPassword != "" {
			if km, kerr := keychain.GetManager(); kerr == nil {
				if serr := km.SaveServerPassword(flagUser, flagPassword); serr != nil {
					pterm.Println(logging.PresentError("saving password", serr))
				}
			}
		}
	}

	sess := shell.NewSession(svc, shell.Options{
		Out:           os.Stdout,
		Err:           os.Stderr,
		Verbose:       flagVerbose,
		Debug:         flagDebug,
		ClientVersion: Version,
	})

	batch := flagQuery != "" || flagCommand != "" || flagFile != ""
	if batch && svc == nil {
		return fmt.Errorf("Not connected to a server")
	}
	if flagNamespace != "" && svc != nil {
		if err := svc.SetDefaultNamespace(ctx, flagNamespace); err != nil {
			return err
		}
		if flagVerbose {
			pterm.Printfln("Set default namespace to: %s", flagNamespace)
		}
	}

	switch {
	case flagQuery != "":
		return sess.RunQueryOnce(flagQuery, flagFormat)
	case flagCommand != "":
		return sess.RunCommandOnce(flagCommand)
	case flagFile != "":
		return sess.RunScript(flagFile)
	default:
		return sess.Run()
	}
}
