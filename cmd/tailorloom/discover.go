package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tailorloom/tailorloom/internal/agent"
	"github.com/tailorloom/tailorloom/internal/cache"
	"github.com/tailorloom/tailorloom/internal/config"
	"github.com/tailorloom/tailorloom/internal/industry"
	"github.com/tailorloom/tailorloom/internal/llm"
	"github.com/tailorloom/tailorloom/internal/logbook"
	"github.com/tailorloom/tailorloom/internal/model"
	"github.com/tailorloom/tailorloom/internal/parse"
	"github.com/tailorloom/tailorloom/internal/pipeline"
	"github.com/tailorloom/tailorloom/internal/pool"
	"github.com/tailorloom/tailorloom/internal/tui"
)

// A session asks at most a few rounds per skill so it stays short.
const maxRoundsPerSkill = 3

func newDiscoverCmd() *cobra.Command {
	var (
		jobFile      string
		resumeID     string
		industryName string
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Interactively surface transferable skills a resume is missing",
		Long: `discover compares a pool resume against a job posting's skill
demands, then walks through the gaps with coaching questions. Confirmed
skills and bullets are written to a new pool entry; the session itself
is never cached.`,
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

			store, err := cache.NewStore(cfg.CacheDir())
			if err != nil {
				return err
			}
			rc, err := cache.NewResumeCache(cfg.ResumeCacheDir())
			if err != nil {
				return err
			}
			entries, err := pool.NewLoader(cfg.PoolDir(), parse.NewParser(client, lb), rc, lb).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load resume pool: %w", err)
			}
			entry, ok := pool.Find(entries, resumeID)
			if !ok {
				return fmt.Errorf("resume %q not in the pool (%d available)", resumeID, len(entries))
			}

			orch := pipeline.New(
				store,
				agent.NewAnalyzer(client, profile, lb),
				agent.NewMatcher(client, lb),
				agent.NewTailor(client, profile, lb),
				agent.NewReviewer(client, lb),
				lb,
			)
			analysis, err := orch.AnalyzePosting(cmd.Context(), model.JobPosting{
				Description: string(jobText),
				FetchedAt:   time.Now().UTC(),
			})
			if err != nil {
				return err
			}

			discovery := agent.NewDiscovery(client, lb)
			gaps := discovery.AnalyzeGaps(analysis, entry.Resume)
			if len(gaps.MissingRequired) == 0 && len(gaps.MissingPreferred) == 0 {
				fmt.Println("No significant skill gaps found.")
				return nil
			}
			fmt.Printf("Missing required skills:  %d\n", len(gaps.MissingRequired))
			fmt.Printf("Missing preferred skills: %d\n", len(gaps.MissingPreferred))

			suggestions := runDiscoverySession(cmd, discovery, analysis, entry.Resume, gaps)
			if len(suggestions) == 0 {
				fmt.Println("\nNo new skills or experiences discovered.")
				return nil
			}

			confirmed, ok := tui.ConfirmSkills(suggestions)
			if !ok || len(confirmed) == 0 {
				fmt.Println("Nothing confirmed; resume unchanged.")
				return nil
			}

			var skills, bullets []string
			for _, s := range confirmed {
				skills = append(skills, s.Skill)
				if s.Bullet != "" {
					bullets = append(bullets, s.Bullet)
				}
			}
			enhanced := agent.ApplyDiscoveries(entry.Resume, skills, bullets)

			outPath := filepath.Join(cfg.PoolDir(), entry.Metadata.ResumeID+"_discovered.json")
			data, err := json.MarshalIndent(enhanced, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Printf("\nEnhanced resume added to the pool: %s\n", outPath)
			fmt.Printf("Tailor with it: tailorloom tailor --job %s --resume %s\n",
				jobFile, entry.Metadata.ResumeID+"_discovered")
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "path to the job posting text file")
	cmd.Flags().StringVarP(&resumeID, "resume", "r", "", "pool resume id to explore")
	cmd.Flags().StringVarP(&industryName, "industry", "i", "", "industry profile (default from config.yaml)")
	_ = cmd.MarkFlagRequired("job")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

// runDiscoverySession walks the missing skills with coaching questions,
// evaluating each answer. A blank or "skip" answer moves on.
func runDiscoverySession(cmd *cobra.Command, discovery *agent.Discovery, analysis model.JobAnalysis, resume model.Resume, gaps agent.GapAnalysis) []tui.SkillSuggestion {
	explore := gaps.Explore()
	in := bufio.NewScanner(cmd.InOrStdin())
	var suggestions []tui.SkillSuggestion

	for i, skill := range explore {
		fmt.Printf("\nExploring skill %d/%d: %s\n", i+1, len(explore), skill)

		guide := discovery.Guide(cmd.Context(), skill, analysis, resume)
		if guide.Context != "" {
			fmt.Printf("Why this matters: %s\n", guide.Context)
		}
		for _, example := range headOf(guide.TransferableExamples, 3) {
			fmt.Printf("  - %s\n", example)
		}

		question := fmt.Sprintf("Do you have any experience related to %s?", skill)
		if len(guide.Questions) > 0 {
			question = guide.Questions[0]
		}

		for round := 0; round < maxRoundsPerSkill; round++ {
			fmt.Printf("\n%s\n", question)
			fmt.Print("Your answer (blank to skip): ")
			if !in.Scan() {
				return suggestions
			}
			answer := strings.TrimSpace(in.Text())
			if answer == "" || strings.EqualFold(answer, "skip") || strings.EqualFold(answer, "no") {
				break
			}

			eval, err := discovery.Evaluate(cmd.Context(), skill, answer, analysis)
			if err != nil {
				fmt.Printf("Could not evaluate that answer: %v\n", err)
				break
			}

			if eval.HasSkill && eval.Confidence > 0.5 {
				fmt.Printf("Found relevant experience: %s\n", eval.Reasoning)
				bullet := ""
				if len(eval.BulletSuggestions) > 0 {
					bullet = eval.BulletSuggestions[0]
				} else if b, err := discovery.SuggestBullet(cmd.Context(), skill, answer, analysis); err == nil {
					bullet = b
				}
				suggestions = append(suggestions, tui.SkillSuggestion{Skill: skill, Bullet: bullet})
				break
			}
			if eval.NeedsMoreExploration && round < maxRoundsPerSkill-1 {
				if eval.Reasoning != "" {
					fmt.Println(eval.Reasoning)
				}
				if eval.FollowUpQuestion != "" {
					question = eval.FollowUpQuestion
				}
				continue
			}
			fmt.Printf("No clear connection to %s found.\n", skill)
			break
		}
	}
	return suggestions
}

func headOf(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
