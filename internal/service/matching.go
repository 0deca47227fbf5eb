package service

import (
	"sort"
	"strings"

	"github.com/avoronov/chessmentor/internal/model"
)

// Matching score weights.
const (
	levelMatchScore = 10
	levelClashScore = -5
	goalMatchScore  = 15
	styleMatchScore = 8
)

var knownLevels = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
}

// FindBestMatch scores every teacher against the student's preferences and
// returns the best one, or nil for an empty directory. Ties fall to the
// higher rating, then to directory order. Inputs are never mutated, so the
// result is the same for the same arguments.
func FindBestMatch(teachers []model.Teacher, prefs model.Preferences) *model.Teacher {
	if len(teachers) == 0 {
		return nil
	}

	type scored struct {
		teacher model.Teacher
		score   int
	}

	ranked := make([]scored, 0, len(teachers))
	for _, teacher := range teachers {
		ranked = append(ranked, scored{teacher: teacher, score: matchScore(teacher, prefs)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].teacher.Rating > ranked[j].teacher.Rating
	})

	best := ranked[0].teacher
	return &best
}

func matchScore(teacher model.Teacher, prefs model.Preferences) int {
	level := strings.ToLower(strings.TrimSpace(prefs.Level))
	goal := strings.ToLower(strings.TrimSpace(prefs.Goal))
	style := strings.ToLower(strings.TrimSpace(prefs.Style))

	score := 0
	for _, tag := range teacher.Tags {
		tag = strings.ToLower(tag)

		if level != "" {
			if tag == level {
				score += levelMatchScore
			} else if _, clash := knownLevels[tag]; clash {
				score += levelClashScore
			}
		}

		if goal != "" && tag == goal {
			score += goalMatchScore
		}
	}

	if style != "" && strings.Contains(strings.ToLower(teacher.Style), style) {
		score += styleMatchScore
	}

	return score
}
