package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("robots version %s\n", version)
		if robotsService == nil {
			return
		}
		info := robotsService.Info()
		cmd.Printf("engine %s\n", info.Version)
		switch {
		case !info.ContentSignalSupported:
			cmd.Println("content-signal: not compiled in")
		case info.ContentSignalEnabled:
			cmd.Println("content-signal: enabled")
		default:
			cmd.Println("content-signal: disabled")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
