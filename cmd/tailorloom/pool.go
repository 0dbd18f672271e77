package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tailorloom/tailorloom/internal/cache"
	"github.com/tailorloom/tailorloom/internal/config"
	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/parse"
	"github.com/tailorloom/tailorloom/internal/pool"
)

func newPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool",
		Short: "List the resumes available for tailoring",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.New(cwd)
			if err != nil {
				return err
			}

			// PDFs in the pool need the LLM to be parsed; without a key
			// we still list whatever is already JSON or cached.
			var client llm.Client
			if apiKey, err := cfg.RequireAPIKey(); err == nil {
				modelName := cfg.Project.Model
				if modelName == "" {
					modelName = llm.DefaultModel
				}
				if c, err := llm.NewAnthropic(apiKey, modelName); err == nil {
					client = c
				}
			}

			lb, err := logbook.New(cfg.LogbookPath())
			if err != nil {
				return err
			}
			rc, err := cache.NewResumeCache(cfg.ResumeCacheDir())
			if err != nil {
				return err
			}

			entries, err := pool.NewLoader(cfg.PoolDir(), parse.NewParser(client, lb), rc, lb).Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Printf("Resume pool is empty. Add resumes (JSON or PDF) to %s\n", cfg.PoolDir())
				return nil
			}

			fmt.Printf("%d resume(s) in %s:\n", len(entries), cfg.PoolDir())
			for _, entry := range entries {
				r := entry.Resume
				fmt.Printf("  %-24s %s", entry.Metadata.ResumeID, r.Name)
				if len(r.Experience) > 0 {
					fmt.Printf(" (%s)", r.Experience[0].Title)
				}
				fmt.Println()
			}
			return nil
		},
	}
}
