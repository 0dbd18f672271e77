// cmd/tailorloom/main.go
//
// Entry point for the tailorloom CLI. Every command works against the
// .tailorloom/ directory of the project it runs in.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tailorloom",
		Short: "Tailor resumes to job postings with staged, cached LLM passes",
		Long: `tailorloom analyzes a job posting, picks the best resume from your
pool, rewrites it toward the posting, and reviews the result. Stage
outputs are cached under .tailorloom/cache so reruns only pay for what
changed.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newTailorCmd(),
		newDiscoverCmd(),
		newCacheCmd(),
		newIndustriesCmd(),
		newPoolCmd(),
	)
	return root
}
