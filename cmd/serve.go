// Copyright © 2026 The gripdap authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rdbg/gripdap/adapter"
	"github.com/rdbg/gripdap/dapserver"
	"github.com/rdbg/gripdap/rdp"
)

var (
	servePort   int
	serveStdio  bool
	serveRemote string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve DAP variable inspection for a remote debuggee",
	Long: `Connect to a remote debuggee and serve its paused-state variables over
the Debug Adapter Protocol.

Transport modes (DAP):
  --port N     Listen for a DAP client on TCP port N (default: 4711)
  --stdio      Use stdin/stdout for DAP communication (for editors that
               launch the debug adapter as a child process)

The remote address can also be set through the config file or the
GRIPDAP_REMOTE environment variable.

Examples:
  gripdap serve --remote localhost:6080              DAP on TCP port 4711
  gripdap serve --remote localhost:6080 --port 9229  DAP on TCP port 9229
  gripdap serve --remote localhost:6080 --stdio      DAP on stdin/stdout`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		remote := serveRemote
		if remote == "" {
			remote = viper.GetString("remote")
		}
		if remote == "" {
			fmt.Fprintln(os.Stderr, "no remote debuggee address (use --remote)")
			os.Exit(1)
		}

		client, err := rdp.Dial(remote, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer client.Close() //nolint:errcheck // best-effort cleanup

		registry := adapter.NewRegistry()
		thread := adapter.NewThreadAdapter("Main", registry, client, log)
		defer thread.Dispose()

		srv := dapserver.New(thread, nil, log)
		if serveStdio {
			err = srv.ServeStdio(os.Stdin, os.Stdout)
		} else {
			log.WithField("port", servePort).Info("listening for DAP client")
			err = srv.ServeTCP(fmt.Sprintf(":%d", servePort))
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "dap server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 4711, "TCP port to listen on for a DAP client")
	serveCmd.Flags().BoolVar(&serveStdio, "stdio", false, "use stdin/stdout for DAP communication")
	serveCmd.Flags().StringVar(&serveRemote, "remote", "", "address of the remote debuggee (host:port)")
	_ = viper.BindPFlag("remote", serveCmd.Flags().Lookup("remote"))
}
