package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/felixgeelhaar/tempo/adapter/cli.Version=..."
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// buildInfo fills the fields the linker left empty from the module's
// embedded VCS stamp.
func buildInfo() (commit, date string) {
	commit, date = Commit, BuildDate
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return orUnknown(commit), orUnknown(date)
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "" {
				commit = s.Value
			}
		case "vcs.time":
			if date == "" {
				date = s.Value
			}
		}
	}
	return orUnknown(commit), orUnknown(date)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print build information",
	Annotations: map[string]string{skipAppAnnotation: ""},
	Run: func(cmd *cobra.Command, args []string) {
		commit, date := buildInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "tempo %s (%s, built %s, %s)\n", Version, commit, date, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
