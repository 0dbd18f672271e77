package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tailorloom/tailorloom/internal/agent"
	"github.com/tailorloom/tailorloom/internal/cache"
	"github.com/tailorloom/tailorloom/internal/config"
	"github.com/tailorloom/tailorloom/internal/diff"
	"github.com/tailorloom/tailorloom/internal/export"
	"github.com/tailorloom/tailorloom/internal/industry"
	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/model"
	"github.com/tailorloom/tailorloom/internal/parse"
	"github.com/tailorloom/tailorloom/internal/pipeline"
	"github.com/tailorloom/tailorloom/internal/pool"
	"github.com/tailorloom/tailorloom/internal/report"
	"github.com/tailorloom/tailorloom/internal/tui"
)

// lastJob remembers the previous run's inputs so `tailorloom tailor`
// with no flags repeats the last posting.
type lastJob struct {
	JobFile  string `json:"job_file"`
	Company  string `json:"company"`
	Title    string `json:"title"`
	Industry string `json:"industry"`
}

func newTailorCmd() *cobra.Command {
	var (
		jobFile      string
		company      string
		title        string
		industryName string
		resumeID     string
		output       string
		focus        []string
		noInput      bool
		skipReview   bool
	)

	cmd := &cobra.Command{
		Use:   "tailor",
		Short: "Tailor a pool resume to a job posting",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			if err := config.InitProjectDir(cwd); err != nil {
				return fmt.Errorf("initialize %s: %w", config.Dir, err)
			}
			cfg, err := config.New(cwd)
			if err != nil {
				return err
			}

			// Fall back to the previous run's inputs.
			if jobFile == "" {
				last, ok := loadLastJob(cfg.LastJobPath())
				if !ok {
					return errors.New("no job file given and no previous run to repeat; pass --job")
				}
				jobFile = last.JobFile
				if company == "" {
					company = last.Company
				}
				if title == "" {
					title = last.Title
				}
				if industryName == "" {
					industryName = last.Industry
				}
				fmt.Printf("Reusing last job: %s (%s at %s)\n", jobFile, title, company)
			}

			jobText, err := os.ReadFile(jobFile)
			if err != nil {
				return fmt.Errorf("read job posting: %w", err)
			}

			apiKey, err := cfg.RequireAPIKey()
			if err != nil {
				return err
			}

			lb, err := logbook.New(cfg.LogbookPath())
			if err != nil {
				return err
			}

			modelName := cfg.Project.Model
			if modelName == "" {
				modelName = llm.DefaultModel
			}
			client, err := llm.NewAnthropic(apiKey, modelName)
			if err != nil {
				return err
			}

			if industryName == "" {
				industryName = cfg.Industry()
			}
			profile, err := industry.Select(cfg.IndustriesDir(), industryName)
			if err != nil {
				return err
			}
			fmt.Printf("Industry profile: %s\n", profile.DisplayName)

			store, err := cache.NewStore(cfg.CacheDir())
			if err != nil {
				return err
			}
			rc, err := cache.NewResumeCache(cfg.ResumeCacheDir())
			if err != nil {
				return err
			}

			parser := parse.NewParser(client, lb)
			entries, err := pool.NewLoader(cfg.PoolDir(), parser, rc, lb).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load resume pool: %w", err)
			}
			if len(entries) == 0 {
				fmt.Printf("Resume pool is empty. Add resumes (JSON or PDF) to %s\n", cfg.PoolDir())
				return nil
			}

			orch := pipeline.New(
				store,
				agent.NewAnalyzer(client, profile, lb),
				agent.NewMatcher(client, lb),
				agent.NewTailor(client, profile, lb),
				agent.NewReviewer(client, lb),
				lb,
			)

			if len(focus) == 0 {
				focus = cfg.Project.Pipeline.Focus
			}
			opts := pipeline.Options{
				ResumeID:   resumeID,
				Focus:      focus,
				SkipReview: skipReview || cfg.Project.Pipeline.SkipReview,
			}
			if resumeID == "" && !noInput {
				opts.Select = tui.PickMatch
			}

			res, err := orch.Run(cmd.Context(), model.JobPosting{
				Company:     company,
				Title:       title,
				Description: string(jobText),
				FetchedAt:   time.Now().UTC(),
			}, entries, opts)
			if err != nil {
				return err
			}
			if res.Selected == nil {
				fmt.Println(report.Matches(res.Matches))
				fmt.Println("No resume selected; nothing tailored.")
				return nil
			}

			summary := diff.Summarize(res.Diff, res.Analysis)
			fmt.Println(report.ChangeSummary(summary))
			var review *model.ReviewReport
			if !opts.SkipReview {
				review = &res.Review
				fmt.Println(report.Review(res.Review))
			}

			exporter := export.New(cfg.TailoredDir(), cfg.MetadataDir())
			exported, err := exporter.Export(res.Tailored, res.Analysis, res.Selected.Metadata.ResumeID, res.Selected.Score)
			if err != nil {
				return err
			}
			fmt.Printf("Tailored resume: %s\n", exported.ResumePath)
			fmt.Printf("Markdown:        %s\n", exported.MarkdownPath)

			if output != "" {
				data, err := json.MarshalIndent(res.Tailored, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Printf("Copy:            %s\n", output)
			}

			htmlPath := filepath.Join(cfg.ReportsDir(), exported.Metadata.ResumeID+".html")
			if err := report.WriteHTML(htmlPath, res.Analysis, summary, res.Diff, review); err != nil {
				lb.Warn("writing HTML report: %v", err)
			} else {
				fmt.Printf("Report:          %s\n", htmlPath)
			}

			saveLastJob(cfg.LastJobPath(), lastJob{
				JobFile:  jobFile,
				Company:  company,
				Title:    title,
				Industry: industryName,
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "path to the job posting text file")
	cmd.Flags().StringVarP(&company, "company", "c", "", "company name")
	cmd.Flags().StringVarP(&title, "title", "t", "", "job title")
	cmd.Flags().StringVarP(&industryName, "industry", "i", "", "industry profile (default from config.yaml)")
	cmd.Flags().StringVarP(&resumeID, "resume", "r", "", "pool resume id to use, skipping the match stage")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write an extra copy of the tailored resume JSON here")
	cmd.Flags().StringSliceVar(&focus, "focus", nil, "tailoring areas: summary, bullets, keywords, skills")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "never prompt; auto-pick the best match")
	cmd.Flags().BoolVar(&skipReview, "skip-review", false, "skip the quality review stage")
	return cmd
}

func loadLastJob(path string) (lastJob, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lastJob{}, false
	}
	var last lastJob
	if err := json.Unmarshal(data, &last); err != nil {
		return lastJob{}, false
	}
	if last.JobFile == "" {
		return lastJob{}, false
	}
	if _, err := os.Stat(last.JobFile); errors.Is(err, fs.ErrNotExist) {
		return lastJob{}, false
	}
	return last, true
}

func saveLastJob(path string, last lastJob) {
	data, err := json.MarshalIndent(last, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0644)
}
