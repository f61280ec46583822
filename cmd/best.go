package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matching"
)

// defaultBestTop is how many best matches the dashboard shows.
const defaultBestTop = 6

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Find the best matching jobs across all résumés of a user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return best(cmd)
	},
}

func init() {
	rootCmd.AddCommand(bestCmd)

	bestCmd.Flags().String("user", "", "user id")
	bestCmd.Flags().Int("top", defaultBestTop, "number of matches to print. 0 prints all")
	bestCmd.MarkFlagRequired("user")
}

func best(cmd *cobra.Command) error {
	ctx := cmd.Context()

	s, err := newSession()
	if err != nil {
		return err
	}

	userID, _ := cmd.Flags().GetString("user")
	top, _ := cmd.Flags().GetInt("top")

	s.logger = logger.WithCommonFields(s.logger, "", "", userID)

	resumes, err := s.records.UserResumes(ctx, userID)
	if err != nil {
		return err
	}

	if len(resumes) == 0 {
		s.logger.Info("exiting", zap.String("reason", "user has no resumes"))
		return printJSON(cmd.OutOrStdout(), []matching.BestMatch{})
	}

	jobs, err := s.records.ActiveJobs(ctx)
	if err != nil {
		return err
	}

	profiles := make([]matching.CandidateProfile, 0, len(resumes))
	for _, resume := range resumes {
		profiles = append(profiles, resume.CandidateProfile)
	}

	matches, err := s.scorer.BestAcrossResumes(ctx, profiles, jobs.Requirements())
	if err != nil {
		return err
	}

	s.logger.Info("best matches calculated",
		zap.Int("resumes", len(profiles)),
		zap.Int("jobs", jobs.Len()),
		zap.Int("workers", s.scorer.Config().Workers),
	)

	return printJSON(cmd.OutOrStdout(), matching.Top(matches, top))
}
