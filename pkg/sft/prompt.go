package sft

import (
	"fmt"

	"github.com/tabir/tabir/pkg/dream"
)

// promptTemplate wraps a generated question into a self-contained
// prompt for completion-style fine-tuning.
const promptTemplate = `Sen uzman bir Türk rüya yorumcususun. Türk kültürü ve İslami geleneklere uygun rüya tabirleri yaparsın.

Soru: %s

Cevap:`

// PromptExample is a prompt/completion-style training example.
type PromptExample struct {
	Prompt     string   `json:"prompt"`
	Completion string   `json:"completion"`
	Metadata   Metadata `json:"metadata"`
}

// PromptFormatter renders records as prompt/completion pairs.
type PromptFormatter struct{}

// NewPromptFormatter creates a prompt/completion formatter.
func NewPromptFormatter() *PromptFormatter {
	return &PromptFormatter{}
}

// Name returns the format name.
func (f *PromptFormatter) Name() string {
	return "prompt"
}

// FormatRecord renders one record into prompt/completion examples, one
// per generated question.
func (f *PromptFormatter) FormatRecord(record *dream.CleanedRecord) []any {
	answer := composeAnswer(record.CleanedContent)
	if answer == "" {
		return nil
	}

	questions := generateQuestions(record.DreamSymbol, record)
	metadata := metadataFor(record)

	examples := make([]any, 0, len(questions))
	for _, question := range questions {
		examples = append(examples, &PromptExample{
			Prompt:     fmt.Sprintf(promptTemplate, question),
			Completion: answer,
			Metadata:   metadata,
		})
	}
	return examples
}
