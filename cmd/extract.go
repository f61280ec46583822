package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/profile"
	"github.com/spigell/resume-matcher/internal/records"
)

const textPreviewLength = 120

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract skills, experience and education from a plain-text résumé",
	Long:  "Extract skills, experience and education from a plain-text résumé. With --job the extracted profile is also scored against that job.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return extract(cmd)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("file", "f", "", "plain-text resume file")
	extractCmd.Flags().String("job", "", "job id to score the extracted profile against")
	extractCmd.MarkFlagRequired("file")
}

type extractedMatch struct {
	Profile profile.Extracted     `json:"profile"`
	Match   *matching.MatchResult `json:"match"`
}

func extract(cmd *cobra.Command) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("file")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}

	extracted := profile.Extract(string(data), s.config.Taxonomy)

	s.logger.Debug("extracted resume",
		zap.String("file", path),
		zap.Strings("skills", extracted.Skills),
		zap.String("text", logger.TruncateForLog(extracted.Text, textPreviewLength)),
	)

	jobID, _ := cmd.Flags().GetString("job")
	if jobID == "" {
		return printJSON(cmd.OutOrStdout(), extracted)
	}

	job, err := s.records.Job(cmd.Context(), jobID)
	if err != nil {
		return err
	}

	match, err := scoreExtracted(s.scorer, extracted, filepath.Base(path), job)
	if err != nil {
		return err
	}

	s.logger.Info("scored extracted resume",
		zap.String("job_id", job.ID),
		zap.Int("score", match.Match.Score),
	)

	return printJSON(cmd.OutOrStdout(), match)
}

// scoreExtracted scores a résumé that is not in the store. The file name
// stands in for the résumé id.
func scoreExtracted(scorer *matching.Scorer, extracted profile.Extracted, name string, job *records.Job) (*extractedMatch, error) {
	result, err := scorer.ScoreOne(extracted.Profile(name), job.JobRequirement)
	if err != nil {
		return nil, err
	}
	return &extractedMatch{Profile: extracted, Match: result}, nil
}
