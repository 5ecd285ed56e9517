// Package sft renders cleaned dream interpretation records into
// supervised fine-tuning examples. Two emitters share one
// question-generation and answer-composition routine: ChatFormatter
// produces message-style examples and PromptFormatter produces
// prompt/completion pairs.
package sft

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tabir/tabir/internal/logger"
	"github.com/tabir/tabir/internal/turkish"
	"github.com/tabir/tabir/pkg/dream"
)

const (
	// symbolQuestionCount is how many of the question templates are
	// instantiated for a record's dream symbol.
	symbolQuestionCount = 6

	// maxQuestionsPerRecord caps generated questions, which caps
	// training examples per record.
	maxQuestionsPerRecord = 4

	// maxTagQuestions is how many leading tags may contribute questions.
	maxTagQuestions = 2

	// minAnswerParagraphRunes is the length a paragraph must exceed to
	// survive answer composition; shorter ones are treated as noise.
	minAnswerParagraphRunes = 30

	// maxAnswerParagraphs caps the composed answer length.
	maxAnswerParagraphs = 4

	// progressInterval controls how often batch progress is logged.
	progressInterval = 50
)

// questionTemplates are the fixed Turkish question phrasings. The first
// symbolQuestionCount entries are used per record; order is fixed.
var questionTemplates = []string{
	"Rüyamda %s gördüm, ne anlama gelir?",
	"Rüyada %s görmek neye işaret eder?",
	"%s rüyası nasıl yorumlanır?",
	"Rüyada %s görmenin anlamı nedir?",
	"%s rüyasının tabiri nedir?",
	"Rüyamda %s vardı, bu neyi ifade eder?",
	"Rüyada %s görmek iyi mi kötü mü?",
	"%s ile ilgili rüyamın açıklaması nedir?",
	"Rüyada %s görmek hakkında ne dersiniz?",
	"%s rüyasının İslami yorumu nedir?",
}

// systemMessage is the persona instruction attached to every
// chat-style example.
const systemMessage = `Sen uzman bir Türk rüya yorumcususun. Türk kültürü ve İslami geleneklere uygun olarak rüya tabirlerini açıklarsın. Rüyaları yorumlarken:

1. Türk halk kültürü ve İslami kaynaklara dayanarak açıklama yap
2. Hem olumlu hem olumsuz anlamları belirt
3. Kültürel bağlamı ve geleneksel yorumları dahil et
4. Açıklayıcı ve anlayışlı bir dil kullan
5. Rüya sahibinin durumuna göre farklı yorumlar olabileceğini belirt`

// Message is one turn in a chat-style training example.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Metadata links a training example back to its source record.
type Metadata struct {
	DreamSymbol string `json:"dream_symbol"`
	OriginalID  string `json:"original_id"`
	SourceURL   string `json:"source_url"`
}

// Formatter renders one cleaned record into training examples.
// A record with an empty composed answer yields zero examples.
type Formatter interface {
	// Name returns the format name for logging and file naming.
	Name() string

	// FormatRecord renders the record into zero or more examples.
	FormatRecord(record *dream.CleanedRecord) []any
}

// FormatBatch renders all records with the given formatter, preserving
// record order. Records that yield no examples are skipped silently.
func FormatBatch(f Formatter, records []*dream.CleanedRecord) []any {
	logger.Info("formatting records", "format", f.Name(), "count", len(records))

	examples := make([]any, 0, len(records)*maxQuestionsPerRecord)
	for i, record := range records {
		if i%progressInterval == 0 {
			logger.Info("formatting record", "format", f.Name(), "current", i+1, "total", len(records))
		}
		examples = append(examples, f.FormatRecord(record)...)
	}

	logger.Info("formatting complete", "format", f.Name(), "examples", len(examples))
	return examples
}

// generateQuestions builds the question list for a record. Symbol
// questions come first, then an optional title question, then up to
// maxTagQuestions tag questions; the combined list is capped at
// maxQuestionsPerRecord.
func generateQuestions(symbol string, record *dream.CleanedRecord) []string {
	questions := make([]string, 0, symbolQuestionCount+maxTagQuestions+1)

	if symbol != "" {
		for _, template := range questionTemplates[:symbolQuestionCount] {
			questions = append(questions, fmt.Sprintf(template, symbol))
		}
		// A title question adds variety when the title brings new words.
		if record.Title != "" && !turkish.Contains(record.Title, symbol) {
			questions = append(questions, record.Title+" hakkında ne söyleyebilirsiniz?")
		}
	} else if record.Title != "" {
		questions = append(questions,
			record.Title+" ne anlama gelir?",
			record.Title+" nasıl yorumlanır?",
			record.Title+" hakkında bilgi verir misiniz?",
		)
	}

	tags := record.Tags
	if len(tags) > maxTagQuestions {
		tags = tags[:maxTagQuestions]
	}
	for _, tag := range tags {
		if tag != "" && tag != symbol {
			questions = append(questions, fmt.Sprintf("Rüyada %s görmek neyi ifade eder?", tag))
		}
	}

	if len(questions) > maxQuestionsPerRecord {
		questions = questions[:maxQuestionsPerRecord]
	}
	return questions
}

// composeAnswer turns cleaned content into an answer: paragraphs longer
// than minAnswerParagraphRunes, at most maxAnswerParagraphs of them,
// joined by blank lines. An empty result means the record produces no
// training examples.
func composeAnswer(content string) string {
	if content == "" {
		return ""
	}

	paragraphs := make([]string, 0, maxAnswerParagraphs)
	for _, paragraph := range strings.Split(content, "\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		if utf8.RuneCountInString(paragraph) > minAnswerParagraphRunes {
			paragraphs = append(paragraphs, paragraph)
			if len(paragraphs) == maxAnswerParagraphs {
				break
			}
		}
	}

	answer := strings.Join(paragraphs, "\n\n")
	answer = strings.ReplaceAll(answer, "  ", " ")
	return strings.TrimSpace(answer)
}

// metadataFor builds the example metadata shared by both formats.
func metadataFor(record *dream.CleanedRecord) Metadata {
	return Metadata{
		DreamSymbol: record.DreamSymbol,
		OriginalID:  record.OriginalID,
		SourceURL:   record.URL,
	}
}
