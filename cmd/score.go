package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single résumé against a single job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("resume", "", "resume id")
	scoreCmd.Flags().String("job", "", "job id")
	scoreCmd.MarkFlagRequired("resume")
	scoreCmd.MarkFlagRequired("job")
}

func score(cmd *cobra.Command) error {
	ctx := cmd.Context()

	s, err := newSession()
	if err != nil {
		return err
	}

	resumeID, _ := cmd.Flags().GetString("resume")
	jobID, _ := cmd.Flags().GetString("job")

	resume, err := s.records.Resume(ctx, resumeID)
	if err != nil {
		return err
	}
	s = s.forResume(resume)

	job, err := s.records.Job(ctx, jobID)
	if err != nil {
		return err
	}

	result, err := s.scorer.ScoreOne(resume.CandidateProfile, job.JobRequirement)
	if err != nil {
		return err
	}

	s.logger.Info("scored job",
		zap.String("job_id", job.ID),
		zap.Int("score", result.Score),
		zap.String("tier", string(result.Tier)),
	)

	return printJSON(cmd.OutOrStdout(), result)
}
