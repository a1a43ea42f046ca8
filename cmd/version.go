package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version 构建时通过 -ldflags "-X github.com/moyu-x/file-organizer/cmd.Version=..." 注入
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "file-organizer %s (%s/%s, %s)\n", Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
