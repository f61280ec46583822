package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/records"
)

// session holds what every command needs for a single run.
type session struct {
	runID   string
	config  *Config
	logger  *zap.Logger
	records *records.Client
	scorer  *matching.Scorer
}

func newSession() (*session, error) {
	base, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	runID := uuid.NewString()
	log := logger.WithCommonFields(base, runID, "", "")

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	scorer, err := matching.NewScorer(config.Matching, log)
	if err != nil {
		return nil, err
	}

	client := records.New(records.NewFileStore(config.Store.Paths()), log)
	if config.Store.JobsLimit > 0 {
		client.JobsLimit = config.Store.JobsLimit
	}

	return &session{
		runID:   runID,
		config:  config,
		logger:  log,
		records: client,
		scorer:  scorer,
	}, nil
}

// forResume returns a copy of the session that tags every log line with the résumé.
func (s *session) forResume(resume *records.Resume) *session {
	scoped := *s
	scoped.logger = logger.WithFields(s.logger, logger.CommonFields("", resume.ID, resume.UserID)...)
	return &scoped
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
