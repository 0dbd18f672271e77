package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tailorloom/tailorloom/internal/cache"
	"github.com/tailorloom/tailorloom/internal/config"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear cached pipeline artifacts",
	}
	cmd.AddCommand(newCacheListCmd(), newCacheClearCmd())
	return cmd
}

func openCaches() (*cache.Store, *cache.ResumeCache, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.New(cwd)
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.NewStore(cfg.CacheDir())
	if err != nil {
		return nil, nil, err
	}
	rc, err := cache.NewResumeCache(cfg.ResumeCacheDir())
	if err != nil {
		return nil, nil, err
	}
	return store, rc, nil
}

func newCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show cached artifact counts per stage and parsed resumes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, rc, err := openCaches()
			if err != nil {
				return err
			}

			counts := store.Counts()
			fmt.Println("Pipeline artifacts:")
			for _, stage := range []string{
				cache.StageJobAnalysis,
				cache.StageTailoredResume,
				cache.StageQualityReview,
			} {
				fmt.Printf("  %-16s %d\n", stage, counts[stage])
			}

			parsed := rc.List()
			fmt.Printf("\nParsed resumes: %d\n", len(parsed))
			ids := make([]string, 0, len(parsed))
			for id := range parsed {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fp := parsed[id]
				fmt.Printf("  %-24s %s (%d bytes, parsed %s)\n",
					id, fp.SourcePath, fp.ByteSize, fp.CapturedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached artifacts (all stages, one stage, or parsed resumes)",
		Long: `Delete cached artifacts.

Without --stage every pipeline artifact is removed; parsed resumes are
kept. Valid stages: job_analysis, tailored_resume, quality_review,
resumes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, rc, err := openCaches()
			if err != nil {
				return err
			}

			switch stage {
			case "resumes":
				fmt.Printf("Removed %d parsed resume(s)\n", rc.Clear(""))
			case "", cache.StageJobAnalysis, cache.StageTailoredResume, cache.StageQualityReview:
				fmt.Printf("Removed %d artifact(s)\n", store.Clear(stage))
			default:
				return fmt.Errorf("unknown stage %q", stage)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "limit to one stage (job_analysis, tailored_resume, quality_review, resumes)")
	return cmd
}
