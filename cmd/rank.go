package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/records"
)

const (
	PromptExit                = "Exit"
	PromptBack                = "back"
	PromptPrint               = "Print results"
	PromptBreakdown           = "Show score breakdown"
	PromptReportByCompanies   = "Report by companies"
	PromptAppendToExcludeFile = "Append all jobs to exclude file"
	PromptResultsToFile       = "Dump results to file"

	excludeReason = "excluded from ranking"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank active jobs for a résumé",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("resume", "", "resume id")
	rankCmd.Flags().Int("top", 0, "number of results to print. 0 prints all")
	rankCmd.Flags().BoolP("interactive", "i", false, "browse results interactively")
	rankCmd.Flags().BoolP("do-not-exclude-applied", "f", false, "do not exclude jobs if already applied")
	rankCmd.MarkFlagRequired("resume")
}

// ranking is the state browsed in interactive mode.
type ranking struct {
	jobs    *records.Jobs
	skills  []string
	results []matching.MatchResult
}

func rank(cmd *cobra.Command) error {
	ctx := cmd.Context()

	s, err := newSession()
	if err != nil {
		return err
	}

	resumeID, _ := cmd.Flags().GetString("resume")
	top, _ := cmd.Flags().GetInt("top")
	interactive, _ := cmd.Flags().GetBool("interactive")
	skipApplied, _ := cmd.Flags().GetBool("do-not-exclude-applied")

	resume, err := s.records.Resume(ctx, resumeID)
	if err != nil {
		return err
	}
	s = s.forResume(resume)

	jobs, err := s.records.ActiveJobs(ctx)
	if err != nil {
		return err
	}

	if jobs.Len() == 0 {
		s.logger.Info("exiting", zap.String("reason", "no active jobs found"))
		return printJSON(cmd.OutOrStdout(), []matching.MatchResult{})
	}

	steps := filtering.Default(skipApplied)
	if s.config.Store.Applications == "" {
		filtering.DisableByName(steps, "applied_history", "applications store is not configured")
	}

	jobs, scores, err := filtering.Run(ctx, &s.config.Filters, filtering.Deps{
		Records: s.records,
		Scorer:  s.scorer,
		Logger:  s.logger,
		Resume:  resume,
	}, steps, jobs)
	if err != nil {
		return fmt.Errorf("filtering failed: %w", err)
	}

	for _, status := range filtering.Describe(steps) {
		s.logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	results, err := rankJobs(s.scorer, resume, jobs, scores)
	if err != nil {
		return err
	}
	results = matching.Top(results, top)

	s.logger.Info("jobs ranked", zap.Int("count", len(results)))

	if !interactive {
		return printJSON(cmd.OutOrStdout(), results)
	}

	r := &ranking{jobs: jobs, skills: resume.Skills, results: results}
	for {
		prompt := promptui.Select{
			Label: "Proceed?",
			Items: r.actions(s.config.Filters.ExcludeFile),
		}

		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := r.handleAction(cmd, s, action); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

// rankJobs reuses the scores computed by the filter chain when they cover every
// remaining job and scores the jobs otherwise.
func rankJobs(scorer *matching.Scorer, resume *records.Resume, jobs *records.Jobs, scores map[string]matching.MatchResult) ([]matching.MatchResult, error) {
	results := make([]matching.MatchResult, 0, jobs.Len())
	for _, job := range jobs.Items {
		result, ok := scores[job.ID]
		if !ok {
			return scorer.ScoreBatch(resume.CandidateProfile, jobs.Requirements())
		}
		results = append(results, result)
	}

	matching.SortByScore(results)
	return results, nil
}

func (r *ranking) actions(excludeFile string) []string {
	items := []string{PromptPrint, PromptBreakdown, PromptReportByCompanies, PromptResultsToFile}
	if excludeFile != "" && len(r.results) != 0 {
		items = append(items, PromptAppendToExcludeFile)
	}
	return append(items, PromptExit)
}

func (r *ranking) handleAction(cmd *cobra.Command, s *session, action string) error {
	switch action {
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptPrint:
		return printJSON(cmd.OutOrStdout(), r.results)
	case PromptBreakdown:
		return r.breakdown(cmd)
	case PromptReportByCompanies:
		pretty, _ := json.MarshalIndent(r.jobs.ReportByCompany(r.results, r.skills), "", "  ")
		s.logger.Info(string(pretty), zap.Int("jobs count", len(r.results)))
		return nil
	case PromptResultsToFile:
		filename, err := records.DumpToTmpFile("resume-matcher-*.json", r.results)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return r.appendToExcludeFile(s)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (r *ranking) breakdown(cmd *cobra.Command) error {
	for {
		items := make([]string, 0, len(r.results)+1)
		for _, result := range r.results {
			label := fmt.Sprintf("%s %d%%", result.JobID, result.Score)
			if job := r.jobs.FindByID(result.JobID); job != nil {
				label = fmt.Sprintf("%s %d%% / %s / %s", job.ID, result.Score, job.Title, job.Company)
			}
			items = append(items, label)
		}

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		jobID := strings.Split(selected, " ")[0]
		for _, result := range r.results {
			if result.JobID == jobID {
				if err := printJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
				break
			}
		}
	}
}

func (r *ranking) appendToExcludeFile(s *session) error {
	excludeFile := s.config.Filters.ExcludeFile

	excluded, err := records.GetExcludedJobsFromFile(excludeFile)
	if err != nil {
		return err
	}

	shown := &records.Jobs{}
	for _, result := range r.results {
		if job := r.jobs.FindByID(result.JobID); job != nil {
			shown.Items = append(shown.Items, job)
		}
	}

	excluded.Append(shown.ToExcluded(records.ExcludeActorUser, excludeReason))

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	s.logger.Info("appended to exclude file",
		zap.String("filename", excludeFile),
		zap.Int("count", shown.Len()),
	)

	r.jobs.Exclude(records.JobIDField, excluded.JobIDs())
	r.results = r.results[:0]

	return nil
}
