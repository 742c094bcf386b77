package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinchlabs/cmseval/internal/models"
	"github.com/cinchlabs/cmseval/internal/projectconfig"
	"github.com/cinchlabs/cmseval/internal/scoring"
)

func TestResolveUseCases(t *testing.T) {
	ont, _, err := loadData()
	require.NoError(t, err)

	t.Run("flags win over config", func(t *testing.T) {
		cfg := projectconfig.New()
		cfg.Evaluation.UseCases = []string{"multi_property"}

		selected, err := resolveUseCases(ont, cfg, []string{"paid_landing_pages"})
		require.NoError(t, err)
		assert.Equal(t, []string{"paid_landing_pages"}, selected)
	})

	t.Run("config used when no flags", func(t *testing.T) {
		cfg := projectconfig.New()
		cfg.Evaluation.UseCases = []string{"multi_property"}

		selected, err := resolveUseCases(ont, cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"multi_property"}, selected)
	})

	t.Run("defaults to every use case", func(t *testing.T) {
		selected, err := resolveUseCases(ont, projectconfig.New(), nil)
		require.NoError(t, err)
		assert.Equal(t, ont.UseCaseKeys(), selected)
	})

	t.Run("unknown key is an error", func(t *testing.T) {
		_, err := resolveUseCases(ont, projectconfig.New(), []string{"bogus"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown use case "bogus"`)
	})
}

func TestBuildRecommendations(t *testing.T) {
	ranked := []scoring.RankedPlatform{
		{Assessment: models.PlatformAssessment{Platform: "Alpha"}, Composite: 0.84, Rank: 1},
		{Assessment: models.PlatformAssessment{Platform: "Beta"}, Composite: 0.71, Rank: 2},
		{Assessment: models.PlatformAssessment{Platform: "Gamma"}, Composite: 0.55, Rank: 3},
		{Assessment: models.PlatformAssessment{Platform: "Delta"}, Composite: 0.40, Rank: 4},
	}

	recs := buildRecommendations(ranked, []string{"paid_landing_pages"})
	require.Len(t, recs, 3)
	assert.Contains(t, recs[0], "Top pick: Alpha (composite 0.84)")
	assert.Contains(t, recs[0], "paid_landing_pages")
	assert.Contains(t, recs[1], "Runner-up: Beta")
	assert.Contains(t, recs[2], "Gamma, Delta")
}

func TestBuildRecommendations_Empty(t *testing.T) {
	assert.Nil(t, buildRecommendations(nil, nil))
}
