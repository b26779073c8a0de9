package engine

import (
	"log/slog"

	"github.com/vaidya/ahara/internal/modelclient"
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/projectconfig"
)

// FromProject builds an Engine from project configuration. When scorers are
// enabled one model client serves all three scorer contracts.
func FromProject(pc *projectconfig.ProjectConfig, logger *slog.Logger) (*Engine, error) {
	cfg := Config{
		ScorerTimeout: pc.ScorerTimeout(),
		Workers:       pc.Scoring.Workers,
		Logger:        logger,
	}
	if pc.ScorersEnabled() {
		client := modelclient.New(modelclient.Config{
			Endpoint: pc.Scorers.Endpoint,
			APIKey:   pc.Scorers.APIKey,
		})
		cfg.Predictor = client
		cfg.PairScorer = client
		cfg.Classifier = client
		cfg.PairCacheSize = pc.Cache.PairCacheSize
		cfg.DoshaCacheSize = pc.Cache.DoshaCacheSize
	}
	return New(cfg)
}

// DefaultProfile returns the configured patient demographics. An
// unrecognised gender falls back to male.
func DefaultProfile(pc *projectconfig.ProjectConfig) models.PatientProfile {
	gender, _ := models.ParseGender(pc.Patient.Gender)
	return models.PatientProfile{Age: pc.Patient.Age, Gender: gender}
}
