package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/tabedit/internal/app"
)

// Set during build with -ldflags.
var version = "dev"

var debug bool

var rootCmd = &cobra.Command{
	Use:   "tabedit [files...]",
	Short: "Terminal text editor with tabs",
	Long: `tabedit opens each file argument in its own tab. Files that do not exist
yet are created on first save. A directory argument becomes the open folder.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.New(args, debug).Run()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tabedit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tabedit version %s\n", version)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tabedit:", err)
		os.Exit(1)
	}
}
