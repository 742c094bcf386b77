// Package scoring turns a platform assessment, a set of selected use cases,
// and business-outcome weights into per-use-case and composite fitness
// scores. Everything here is pure computation; no I/O.
package scoring

import (
	"math"
	"sort"

	"github.com/cinchlabs/cmseval/internal/models"
	"github.com/cinchlabs/cmseval/internal/ontology"
)

// Mixing weights for the composite score: use-case fit vs. business fit.
const (
	useCaseWeight  = 0.6
	businessWeight = 0.4
)

// ForUseCase scores how well an assessment meets one use case's required
// capability levels. Each capability contributes
// min(actual/max(required,1), 1.0): meeting the bar is worth 1.0 and
// exceeding it earns no extra credit. Missing capability scores count as 0.
// An unknown use case or an empty requirement set yields 0.0.
func ForUseCase(ont *ontology.Ontology, assessment models.PlatformAssessment, useCaseKey string) float64 {
	uc, ok := ont.GetUseCase(useCaseKey)
	if !ok || len(uc.RequiredCapabilities) == 0 {
		return 0.0
	}

	var total float64
	for capKey, required := range uc.RequiredCapabilities {
		actual := assessment.CapabilityScores[capKey]
		divisor := required
		if divisor < 1 {
			divisor = 1
		}
		fit := math.Min(float64(actual)/float64(divisor), 1.0)
		total += fit
	}
	return total / float64(len(uc.RequiredCapabilities))
}

// Composite blends the mean use-case fit with the assessment's own overall
// fit score, 0.6/0.4. An empty use-case selection zeroes the use-case term.
// outcomeWeights is accepted for API stability but does not enter the
// arithmetic; the business term is the assessment's single scalar. The
// result is not clamped: an out-of-range OverallFitScore passes through.
func Composite(ont *ontology.Ontology, assessment models.PlatformAssessment, useCaseKeys []string, outcomeWeights map[string]float64) float64 {
	_ = outcomeWeights

	var useCaseFit float64
	if len(useCaseKeys) > 0 {
		var total float64
		for _, key := range useCaseKeys {
			total += ForUseCase(ont, assessment, key)
		}
		useCaseFit = total / float64(len(useCaseKeys))
	}

	return useCaseFit*useCaseWeight + assessment.OverallFitScore*businessWeight
}

// RankedPlatform pairs an assessment with its computed scores and final rank.
type RankedPlatform struct {
	Assessment  models.PlatformAssessment
	UseCaseFit  float64
	BusinessFit float64
	Composite   float64
	Rank        int
}

// Rank computes composite scores for every assessment and orders them
// descending. Ties keep input order (stable sort); ranks are 1-based.
func Rank(ont *ontology.Ontology, assessments []models.PlatformAssessment, useCaseKeys []string, outcomeWeights map[string]float64) []RankedPlatform {
	ranked := make([]RankedPlatform, len(assessments))
	for i, a := range assessments {
		var useCaseFit float64
		if len(useCaseKeys) > 0 {
			var total float64
			for _, key := range useCaseKeys {
				total += ForUseCase(ont, a, key)
			}
			useCaseFit = total / float64(len(useCaseKeys))
		}
		ranked[i] = RankedPlatform{
			Assessment:  a,
			UseCaseFit:  useCaseFit,
			BusinessFit: a.OverallFitScore,
			Composite:   Composite(ont, a, useCaseKeys, outcomeWeights),
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Composite > ranked[b].Composite
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
