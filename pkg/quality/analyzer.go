package quality

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tabir/tabir/internal/logger"
	"github.com/tabir/tabir/internal/turkish"
	"github.com/tabir/tabir/pkg/dream"
)

// Quality grades assigned by the dataset-level report.
const (
	GradeExcellent        = "EXCELLENT"
	GradeGood             = "GOOD"
	GradeFair             = "FAIR"
	GradeNeedsImprovement = "NEEDS_IMPROVEMENT"
)

// trainingReadyScore is the minimum per-content quality score for a
// record to count as training-ready.
const trainingReadyScore = 70

// wellRepresentedCount is the instance count at which a dream symbol
// is considered well covered by the dataset.
const wellRepresentedCount = 5

// traditionalIndicators mark classical Turkish interpretation
// vocabulary. Each hit is worth 10 authenticity points.
var traditionalIndicators = []string{
	"alim", "tabir", "delalet", "işaret", "imam", "diyanet",
	"islami", "geleneksel", "halk", "kültür", "türk",
}

// islamicKeywords mark religious context. Each hit is worth 5 points.
var islamicKeywords = []string{
	"allah", "peygamber", "dua", "namaz", "haram", "helal",
	"sevap", "günah", "ahiret", "cennet", "cehennem",
}

// SymbolCount pairs a dream symbol with its instance count.
type SymbolCount struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Count  int    `json:"count" yaml:"count"`
}

// SymbolCoverage describes how dream symbols are distributed across
// the dataset.
type SymbolCoverage struct {
	TotalSymbolInstances     int           `json:"total_symbol_instances" yaml:"total_symbol_instances"`
	UniqueSymbols            int           `json:"unique_symbols" yaml:"unique_symbols"`
	DistributionBalanceScore float64       `json:"distribution_balance_score" yaml:"distribution_balance_score"`
	CoverageQualityScore     float64       `json:"coverage_quality_score" yaml:"coverage_quality_score"`
	MostCommonSymbols        []SymbolCount `json:"most_common_symbols" yaml:"most_common_symbols"`
	SingletonSymbols         int           `json:"singleton_symbols" yaml:"singleton_symbols"`
	AvgInstancesPerSymbol    float64       `json:"avg_instances_per_symbol" yaml:"avg_instances_per_symbol"`
}

// FieldCounts tallies how many records carry each field.
type FieldCounts struct {
	HasTitle       int `json:"has_title" yaml:"has_title"`
	HasContent     int `json:"has_content" yaml:"has_content"`
	HasDreamSymbol int `json:"has_dream_symbol" yaml:"has_dream_symbol"`
	HasTags        int `json:"has_tags" yaml:"has_tags"`
	HasDescription int `json:"has_description" yaml:"has_description"`
	HasSEOTitle    int `json:"has_seo_title" yaml:"has_seo_title"`
	HasURL         int `json:"has_url" yaml:"has_url"`
}

// FieldPercentages expresses FieldCounts relative to the record count.
type FieldPercentages struct {
	HasTitle       float64 `json:"has_title" yaml:"has_title"`
	HasContent     float64 `json:"has_content" yaml:"has_content"`
	HasDreamSymbol float64 `json:"has_dream_symbol" yaml:"has_dream_symbol"`
	HasTags        float64 `json:"has_tags" yaml:"has_tags"`
	HasDescription float64 `json:"has_description" yaml:"has_description"`
	HasSEOTitle    float64 `json:"has_seo_title" yaml:"has_seo_title"`
	HasURL         float64 `json:"has_url" yaml:"has_url"`
}

// Completeness reports field coverage across the dataset. The overall
// figure averages the three fields essential for training: title,
// content, and dream symbol.
type Completeness struct {
	TotalRecords        int              `json:"total_records" yaml:"total_records"`
	Counts              FieldCounts      `json:"completeness_counts" yaml:"completeness_counts"`
	Percentages         FieldPercentages `json:"completeness_percentages" yaml:"completeness_percentages"`
	OverallCompleteness float64          `json:"overall_completeness" yaml:"overall_completeness"`
}

// ScoreDistribution buckets per-content quality scores.
type ScoreDistribution struct {
	Excellent int `json:"excellent" yaml:"excellent"`
	Good      int `json:"good" yaml:"good"`
	Fair      int `json:"fair" yaml:"fair"`
	Poor      int `json:"poor" yaml:"poor"`
}

// Readiness reports how much of the dataset is fit for SFT training.
type Readiness struct {
	TrainingReadyCount          int               `json:"training_ready_count" yaml:"training_ready_count"`
	TrainingReadinessPercentage float64           `json:"training_readiness_percentage" yaml:"training_readiness_percentage"`
	AverageQualityScore         float64           `json:"average_quality_score" yaml:"average_quality_score"`
	QualityDistribution         ScoreDistribution `json:"quality_distribution" yaml:"quality_distribution"`
	Recommendations             []string          `json:"recommendations" yaml:"recommendations"`
}

// CulturalDistribution buckets per-record authenticity scores.
type CulturalDistribution struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// Cultural reports how well the dataset preserves traditional and
// religious interpretation context.
type Cultural struct {
	AverageCulturalAuthenticity      float64              `json:"average_cultural_authenticity" yaml:"average_cultural_authenticity"`
	RecordsWithTraditionalContext    int                  `json:"records_with_traditional_context" yaml:"records_with_traditional_context"`
	RecordsWithIslamicContext        int                  `json:"records_with_islamic_context" yaml:"records_with_islamic_context"`
	TraditionalContextPercentage     float64              `json:"traditional_context_percentage" yaml:"traditional_context_percentage"`
	IslamicContextPercentage         float64              `json:"islamic_context_percentage" yaml:"islamic_context_percentage"`
	CulturalAuthenticityDistribution CulturalDistribution `json:"cultural_authenticity_distribution" yaml:"cultural_authenticity_distribution"`
}

// Summary condenses the full report into a single score and grade.
type Summary struct {
	OverallQualityScore  float64 `json:"overall_quality_score" yaml:"overall_quality_score"`
	QualityGrade         string  `json:"quality_grade" yaml:"quality_grade"`
	TotalRecordsAnalyzed int     `json:"total_records_analyzed" yaml:"total_records_analyzed"`
}

// Report is the dataset-level quality report written alongside the
// optimized dataset. The yaml tags keep the analyze command's YAML
// output aligned with the JSON key names.
type Report struct {
	QualitySummary             Summary        `json:"quality_summary" yaml:"quality_summary"`
	SymbolCoverage             SymbolCoverage `json:"symbol_coverage_analysis" yaml:"symbol_coverage_analysis"`
	Completeness               Completeness   `json:"content_completeness_analysis" yaml:"content_completeness_analysis"`
	Readiness                  Readiness      `json:"training_readiness_analysis" yaml:"training_readiness_analysis"`
	Cultural                   Cultural       `json:"cultural_authenticity_analysis" yaml:"cultural_authenticity_analysis"`
	ImprovementRecommendations []string       `json:"improvement_recommendations" yaml:"improvement_recommendations"`
}

// Analyze runs every dataset analysis and assembles the full report.
func Analyze(records []*dream.CleanedRecord) *Report {
	logger.Info("analyzing dataset quality", "records", len(records))

	report := &Report{
		SymbolCoverage: AnalyzeSymbolCoverage(records),
		Completeness:   AnalyzeCompleteness(records),
		Readiness:      AnalyzeReadiness(records),
		Cultural:       AnalyzeCultural(records),
	}

	overall := (report.Completeness.OverallCompleteness +
		report.Readiness.TrainingReadinessPercentage +
		report.Cultural.AverageCulturalAuthenticity +
		report.SymbolCoverage.DistributionBalanceScore) / 4

	report.QualitySummary = Summary{
		OverallQualityScore:  round2(overall),
		QualityGrade:         gradeFor(overall),
		TotalRecordsAnalyzed: len(records),
	}
	report.ImprovementRecommendations = improvementRecommendations(report, overall)

	logger.Info("quality analysis complete",
		"overall_score", report.QualitySummary.OverallQualityScore,
		"grade", report.QualitySummary.QualityGrade)

	return report
}

// AnalyzeSymbolCoverage measures how dream symbols are spread over the
// dataset. Balance degrades as a single symbol dominates; coverage is
// the share of unique symbols with enough instances to train on.
func AnalyzeSymbolCoverage(records []*dream.CleanedRecord) SymbolCoverage {
	counts := make(map[string]int)
	total := 0
	for _, record := range records {
		if record.DreamSymbol == "" {
			continue
		}
		counts[record.DreamSymbol]++
		total++
	}

	coverage := SymbolCoverage{
		TotalSymbolInstances: total,
		UniqueSymbols:        len(counts),
		MostCommonSymbols:    make([]SymbolCount, 0, len(counts)),
	}

	for symbol, count := range counts {
		coverage.MostCommonSymbols = append(coverage.MostCommonSymbols, SymbolCount{Symbol: symbol, Count: count})
		if count == 1 {
			coverage.SingletonSymbols++
		}
	}
	// Ties break lexicographically so the top list is deterministic.
	sort.Slice(coverage.MostCommonSymbols, func(i, j int) bool {
		a, b := coverage.MostCommonSymbols[i], coverage.MostCommonSymbols[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Symbol < b.Symbol
	})
	if len(coverage.MostCommonSymbols) > 10 {
		coverage.MostCommonSymbols = coverage.MostCommonSymbols[:10]
	}

	if total > 0 {
		dominance := float64(coverage.MostCommonSymbols[0].Count) / float64(total) * 100
		coverage.DistributionBalanceScore = round2(math.Max(0, 100-dominance))
	}
	if len(counts) > 0 {
		wellRepresented := 0
		for _, count := range counts {
			if count >= wellRepresentedCount {
				wellRepresented++
			}
		}
		coverage.CoverageQualityScore = round2(float64(wellRepresented) / float64(len(counts)) * 100)
	}
	coverage.AvgInstancesPerSymbol = round2(float64(total) / float64(max(len(counts), 1)))

	return coverage
}

// AnalyzeCompleteness tallies field presence across the dataset.
func AnalyzeCompleteness(records []*dream.CleanedRecord) Completeness {
	completeness := Completeness{TotalRecords: len(records)}

	for _, record := range records {
		if record.Title != "" {
			completeness.Counts.HasTitle++
		}
		if record.CleanedContent != "" {
			completeness.Counts.HasContent++
		}
		if record.DreamSymbol != "" {
			completeness.Counts.HasDreamSymbol++
		}
		if len(record.Tags) > 0 {
			completeness.Counts.HasTags++
		}
		if record.Description != "" {
			completeness.Counts.HasDescription++
		}
		if record.SEOTitle != "" {
			completeness.Counts.HasSEOTitle++
		}
		if record.URL != "" {
			completeness.Counts.HasURL++
		}
	}

	if len(records) > 0 {
		n := float64(len(records))
		completeness.Percentages = FieldPercentages{
			HasTitle:       float64(completeness.Counts.HasTitle) / n * 100,
			HasContent:     float64(completeness.Counts.HasContent) / n * 100,
			HasDreamSymbol: float64(completeness.Counts.HasDreamSymbol) / n * 100,
			HasTags:        float64(completeness.Counts.HasTags) / n * 100,
			HasDescription: float64(completeness.Counts.HasDescription) / n * 100,
			HasSEOTitle:    float64(completeness.Counts.HasSEOTitle) / n * 100,
			HasURL:         float64(completeness.Counts.HasURL) / n * 100,
		}
	}

	completeness.OverallCompleteness = (completeness.Percentages.HasTitle +
		completeness.Percentages.HasContent +
		completeness.Percentages.HasDreamSymbol) / 3

	return completeness
}

// AnalyzeReadiness scores every record's content and reports how many
// qualify for training: quality above 70, a dream symbol present, and
// at least 100 runes of content.
func AnalyzeReadiness(records []*dream.CleanedRecord) Readiness {
	if len(records) == 0 {
		return Readiness{
			Recommendations: []string{"No records to analyze"},
		}
	}

	readiness := Readiness{Recommendations: make([]string, 0, 3)}
	scoreSum := 0
	for _, record := range records {
		metrics := AnalyzeContent(record.CleanedContent)
		scoreSum += metrics.QualityScore

		switch {
		case metrics.QualityScore >= 90:
			readiness.QualityDistribution.Excellent++
		case metrics.QualityScore >= 70:
			readiness.QualityDistribution.Good++
		case metrics.QualityScore >= 50:
			readiness.QualityDistribution.Fair++
		default:
			readiness.QualityDistribution.Poor++
		}

		if metrics.QualityScore > trainingReadyScore &&
			record.DreamSymbol != "" &&
			utf8.RuneCountInString(record.CleanedContent) >= shortContentRunes {
			readiness.TrainingReadyCount++
		}
	}

	readiness.AverageQualityScore = float64(scoreSum) / float64(len(records))
	readiness.TrainingReadinessPercentage = float64(readiness.TrainingReadyCount) / float64(len(records)) * 100

	if readiness.AverageQualityScore < 70 {
		readiness.Recommendations = append(readiness.Recommendations,
			"Improve content quality by better HTML cleaning")
	}
	if readiness.TrainingReadinessPercentage < 80 {
		readiness.Recommendations = append(readiness.Recommendations,
			"Filter out low-quality records before training")
	}
	if readiness.TrainingReadyCount < 1000 {
		readiness.Recommendations = append(readiness.Recommendations,
			"Consider data augmentation to increase dataset size")
	}

	return readiness
}

// AnalyzeCultural scores each record's traditional and Islamic
// interpretation vocabulary. A record scores 10 per traditional
// indicator and 5 per Islamic keyword, capped at 100.
func AnalyzeCultural(records []*dream.CleanedRecord) Cultural {
	cultural := Cultural{}
	if len(records) == 0 {
		return cultural
	}

	scoreSum := 0
	for _, record := range records {
		lowered := turkish.Lower(record.CleanedContent)

		traditional := 0
		for _, indicator := range traditionalIndicators {
			if strings.Contains(lowered, indicator) {
				traditional++
			}
		}
		islamic := 0
		for _, keyword := range islamicKeywords {
			if strings.Contains(lowered, keyword) {
				islamic++
			}
		}

		score := min(100, traditional*10+islamic*5)
		scoreSum += score

		if traditional > 0 {
			cultural.RecordsWithTraditionalContext++
		}
		if islamic > 0 {
			cultural.RecordsWithIslamicContext++
		}

		switch {
		case score >= 50:
			cultural.CulturalAuthenticityDistribution.High++
		case score >= 20:
			cultural.CulturalAuthenticityDistribution.Medium++
		default:
			cultural.CulturalAuthenticityDistribution.Low++
		}
	}

	n := float64(len(records))
	cultural.AverageCulturalAuthenticity = float64(scoreSum) / n
	cultural.TraditionalContextPercentage = float64(cultural.RecordsWithTraditionalContext) / n * 100
	cultural.IslamicContextPercentage = float64(cultural.RecordsWithIslamicContext) / n * 100

	return cultural
}

func gradeFor(overall float64) string {
	switch {
	case overall >= 90:
		return GradeExcellent
	case overall >= 75:
		return GradeGood
	case overall >= 60:
		return GradeFair
	default:
		return GradeNeedsImprovement
	}
}

func improvementRecommendations(report *Report, overall float64) []string {
	recommendations := make([]string, 0, 4)

	if overall < 70 {
		recommendations = append(recommendations,
			"Overall data quality needs significant improvement")
	}
	if report.Readiness.TrainingReadinessPercentage < 80 {
		recommendations = append(recommendations,
			"Consider additional data cleaning and filtering")
	}
	if report.Cultural.AverageCulturalAuthenticity < 30 {
		recommendations = append(recommendations,
			"Enhance cultural context preservation in content cleaning")
	}
	if report.Readiness.AverageQualityScore < 70 {
		recommendations = append(recommendations,
			"Improve HTML cleaning and content extraction algorithms")
	}

	if overall >= 80 {
		recommendations = append(recommendations,
			"Data quality is excellent - ready for SFT training")
	}
	if report.Readiness.TrainingReadinessPercentage >= 90 {
		recommendations = append(recommendations,
			"High training readiness - consider advanced data augmentation")
	}

	return recommendations
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// String renders the summary line used by CLI output.
func (s Summary) String() string {
	return fmt.Sprintf("%s (%.2f/100, %d records)", s.QualityGrade, s.OverallQualityScore, s.TotalRecordsAnalyzed)
}
