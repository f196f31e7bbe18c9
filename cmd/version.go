package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Overridden with -ldflags "-X github.com/kamusis/lcdb/cmd.version=..." for
// release builds. Empty values fall back to the module build info.
var (
	version   = ""
	commit    = ""
	buildDate = ""
)

type buildInfo struct {
	Version string
	Commit  string
	Date    string
	Go      string
}

// currentBuild merges linker-set values with what the Go toolchain embedded
// in the binary (module version, vcs.revision, vcs.time).
func currentBuild() buildInfo {
	b := buildInfo{Version: version, Commit: commit, Date: buildDate, Go: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if b.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			b.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = s.Value
				}
			case "vcs.time":
				if b.Date == "" {
					b.Date = s.Value
				}
			}
		}
	}
	if b.Version == "" {
		b.Version = "dev"
	}
	return b
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show lcdb version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b := currentBuild()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "lcdb %s\n", b.Version)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  commit:\t%s\n", orNA(b.Commit))
		fmt.Fprintf(w, "  built:\t%s\n", orNA(b.Date))
		fmt.Fprintf(w, "  go:\t%s %s/%s\n", b.Go, runtime.GOOS, runtime.GOARCH)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
