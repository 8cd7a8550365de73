// Package relevance scores and ranks free-text comments for financial
// substance. The filter is pure and deterministic: given the same keyword
// tables and input list it always yields the same ordered output.
package relevance

import (
	"sort"
	"strings"

	"github.com/bobmcallan/insight/internal/models"
)

// ScoredComment pairs a comment with its relevance score.
type ScoredComment struct {
	Comment   models.Comment
	Score     int
	WordCount int
}

// Filter drops noise, spam and low-signal comments, then returns the
// survivors ordered by descending relevance score. Ties keep their original
// relative order.
func Filter(comments []models.Comment) []models.Comment {
	scored := Score(comments)

	result := make([]models.Comment, len(scored))
	for i, sc := range scored {
		result[i] = sc.Comment
	}
	return result
}

// Score runs the full gate-and-score pass and returns qualifying comments
// with their scores, sorted by descending score (stable).
func Score(comments []models.Comment) []ScoredComment {
	scored := make([]ScoredComment, 0, len(comments))

	for _, c := range comments {
		text := strings.ToLower(c.Text)

		wordCount := len(strings.Fields(text))
		if wordCount < MinWords {
			continue
		}
		if len(strings.TrimSpace(text)) < MinChars {
			continue
		}
		if containsAny(text, SpamKeywords) {
			continue
		}

		score := scoreText(text, wordCount)
		if score < MinScore {
			continue
		}

		scored = append(scored, ScoredComment{
			Comment:   c,
			Score:     score,
			WordCount: wordCount,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// scoreText sums keyword weights and length bonuses for a lowercased text.
func scoreText(text string, wordCount int) int {
	score := 0

	for keyword, weight := range HighValueKeywords {
		if strings.Contains(text, keyword) {
			score += weight
		}
	}

	for _, keyword := range MediumValueKeywords {
		if strings.Contains(text, keyword) {
			score++
		}
	}

	// Length bonuses are additive: a 120-word comment earns all three.
	if wordCount > 30 {
		score++
	}
	if wordCount > 50 {
		score += 2
	}
	if wordCount > 100 {
		score += 2
	}

	return score
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
