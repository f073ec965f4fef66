package services

import (
	"math"
	"strings"

	"recruitkit/resume-matcher/internal/config"
	"recruitkit/resume-matcher/internal/models"
)

// HeuristicScorer computes the free preliminary match score from parsed
// skill lists alone. No I/O, no external calls; the same inputs always yield
// the same result, so recomputing is always safe. The caller persists the
// result into the analysis cache.
type HeuristicScorer struct {
	cfg config.ScoringConfig
}

func NewHeuristicScorer(cfg config.ScoringConfig) *HeuristicScorer {
	return &HeuristicScorer{cfg: cfg}
}

// Score produces a preliminary-tier analysis for the pair. A resume with no
// parsed skills scores like an empty skill set rather than erroring.
func (s *HeuristicScorer) Score(jd *models.JobDescription, resume *models.Resume) *models.Analysis {
	score, matched, missing := s.ScoreSkillMatches(jd, resume.Skills)

	return &models.Analysis{
		JDID:          jd.ID,
		ResumeID:      resume.ID,
		Score:         score,
		MatchRating:   models.RatingPreliminary,
		Tier:          models.TierPreliminary,
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

// ScoreSkillMatches projects the candidate skill list onto the job's
// canonical required and nice-to-have lists and returns the weighted score,
// the matched canonical skills, and the missing required skills. Matching is
// case-insensitive and trimmed; skills outside the job's lists do not count.
func (s *HeuristicScorer) ScoreSkillMatches(jd *models.JobDescription, candidateSkills []string) (float64, []string, []string) {
	candidateSet := make(map[string]struct{}, len(candidateSkills))
	for _, skill := range candidateSkills {
		candidateSet[normalizeSkill(skill)] = struct{}{}
	}

	var matched []string
	var missing []string
	seen := make(map[string]struct{})

	matchedRequired, totalRequired := 0, 0
	for _, skill := range jd.RequiredSkills {
		low := normalizeSkill(skill)
		if low == "" {
			continue
		}
		if _, dup := seen[low]; dup {
			continue
		}
		seen[low] = struct{}{}
		totalRequired++
		if _, ok := candidateSet[low]; ok {
			matchedRequired++
			matched = append(matched, strings.TrimSpace(skill))
		} else {
			missing = append(missing, strings.TrimSpace(skill))
		}
	}

	matchedNice, totalNice := 0, 0
	for _, skill := range jd.NiceToHaveSkills {
		low := normalizeSkill(skill)
		if low == "" {
			continue
		}
		if _, dup := seen[low]; dup {
			continue
		}
		seen[low] = struct{}{}
		totalNice++
		if _, ok := candidateSet[low]; ok {
			matchedNice++
			matched = append(matched, strings.TrimSpace(skill))
		}
	}

	var score float64
	if totalRequired > 0 {
		score += float64(matchedRequired) / float64(totalRequired) * s.cfg.RequiredWeight
	}
	if totalNice > 0 {
		score += float64(matchedNice) / float64(totalNice) * s.cfg.NiceToHaveWeight
	}

	return math.Round(score*100) / 100, matched, missing
}

// Rate thresholds a score into the verified-tier rating bands.
func (s *HeuristicScorer) Rate(score float64) models.MatchRating {
	switch {
	case score > s.cfg.StrongThreshold:
		return models.RatingStrong
	case score > s.cfg.GoodThreshold:
		return models.RatingGood
	default:
		return models.RatingWeak
	}
}

func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
