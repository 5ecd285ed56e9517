// Package quality scores cleaned dream interpretation content and
// produces the dataset-level quality report used to judge training
// readiness. Scores live on a 0-100 scale; all length checks count
// runes and all keyword checks are case-folded substring matches.
package quality

import (
	"strings"
	"unicode/utf8"

	"github.com/tabir/tabir/internal/turkish"
)

// dreamKeywords signal genuine dream-interpretation vocabulary.
var dreamKeywords = []string{
	"rüya", "rüyada", "görmek", "tabir", "yorumlanır", "delalet",
	"işaret", "anlam", "düşman", "hayır", "şer", "bereket", "rızk",
	"manevi", "maddi", "hane", "zarar", "fayda", "hayırlı",
}

// noiseMarkers are platform artifacts that should never appear in
// cleaned content. Each hit costs 15 points.
var noiseMarkers = []string{
	"netcore", "seo", "amp", "milliyet", "pembenar",
	"çok fazla tekrar", "anlamsız", "test",
}

const (
	shortContentRunes = 100
	longContentRunes  = 5000

	minCulturalIndicators = 3

	longSentenceWords  = 30
	shortSentenceWords = 5

	// repetitionRatio flags content where one word exceeds this share
	// of all words. The denominator includes function words, so long
	// natural texts can trip it; the behavior is intentional.
	repetitionRatio = 0.1
)

// ContentMetrics is the per-content quality analysis result.
type ContentMetrics struct {
	QualityScore       int      `json:"quality_score"`
	Issues             []string `json:"issues"`
	CulturalIndicators int      `json:"cultural_indicators"`
	ReadabilityScore   int      `json:"readability_score"`
	ContentLength      int      `json:"content_length"`
	SentenceCount      int      `json:"sentence_count"`
	AvgSentenceLength  float64  `json:"avg_sentence_length"`
	UniqueWords        int      `json:"unique_words"`
}

// AnalyzeContent scores a single cleaned content string. The score
// starts at 100 and loses points for length problems, missing domain
// vocabulary, noise markers, and word repetition; it never leaves
// [0, 100]. Empty content short-circuits to a zero score.
func AnalyzeContent(content string) ContentMetrics {
	if content == "" {
		return ContentMetrics{
			Issues: []string{"empty_content"},
		}
	}

	metrics := ContentMetrics{
		QualityScore:     100,
		ReadabilityScore: 100,
		Issues:           make([]string, 0, 4),
	}

	length := utf8.RuneCountInString(content)
	metrics.ContentLength = length
	if length < shortContentRunes {
		metrics.Issues = append(metrics.Issues, "too_short")
		metrics.QualityScore -= 30
	} else if length > longContentRunes {
		metrics.Issues = append(metrics.Issues, "too_long")
		metrics.QualityScore -= 10
	}

	lowered := turkish.Lower(content)

	for _, keyword := range dreamKeywords {
		if strings.Contains(lowered, keyword) {
			metrics.CulturalIndicators++
		}
	}
	if metrics.CulturalIndicators < minCulturalIndicators {
		metrics.Issues = append(metrics.Issues, "low_cultural_context")
		metrics.QualityScore -= 20
	}

	for _, marker := range noiseMarkers {
		if strings.Contains(lowered, marker) {
			metrics.Issues = append(metrics.Issues, "contains_"+marker)
			metrics.QualityScore -= 15
		}
	}

	// Sentence splitting keeps empty tails so the average stays
	// comparable across runs; "Cümle." counts as two segments.
	sentences := strings.Split(content, ".")
	metrics.SentenceCount = len(sentences)
	totalWords := 0
	for _, sentence := range sentences {
		totalWords += len(strings.Fields(sentence))
	}
	metrics.AvgSentenceLength = float64(totalWords) / float64(max(len(sentences), 1))

	if metrics.AvgSentenceLength > longSentenceWords {
		metrics.Issues = append(metrics.Issues, "long_sentences")
		metrics.ReadabilityScore -= 20
	} else if metrics.AvgSentenceLength < shortSentenceWords {
		metrics.Issues = append(metrics.Issues, "short_sentences")
		metrics.ReadabilityScore -= 10
	}

	words := strings.Fields(lowered)
	frequency := make(map[string]int, len(words))
	topCount := 0
	for _, word := range words {
		frequency[word]++
		if frequency[word] > topCount {
			topCount = frequency[word]
		}
	}
	metrics.UniqueWords = len(frequency)
	if len(words) > 0 && float64(topCount) > float64(len(words))*repetitionRatio {
		metrics.Issues = append(metrics.Issues, "repetitive_content")
		metrics.QualityScore -= 15
	}

	if metrics.QualityScore < 0 {
		metrics.QualityScore = 0
	}

	return metrics
}
