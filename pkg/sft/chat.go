package sft

import (
	"github.com/tabir/tabir/pkg/dream"
)

// ChatExample is a chat-style training example: a fixed system persona,
// a generated user question, and the composed answer.
type ChatExample struct {
	Messages []Message `json:"messages"`
	Metadata Metadata  `json:"metadata"`
}

// ChatFormatter renders records as chat-style examples.
type ChatFormatter struct{}

// NewChatFormatter creates a chat-style formatter.
func NewChatFormatter() *ChatFormatter {
	return &ChatFormatter{}
}

// Name returns the format name.
func (f *ChatFormatter) Name() string {
	return "chat"
}

// FormatRecord renders one record into chat-style examples, one per
// generated question.
func (f *ChatFormatter) FormatRecord(record *dream.CleanedRecord) []any {
	answer := composeAnswer(record.CleanedContent)
	if answer == "" {
		return nil
	}

	questions := generateQuestions(record.DreamSymbol, record)
	metadata := metadataFor(record)

	examples := make([]any, 0, len(questions))
	for _, question := range questions {
		examples = append(examples, &ChatExample{
			Messages: []Message{
				{Role: "system", Content: systemMessage},
				{Role: "user", Content: question},
				{Role: "assistant", Content: answer},
			},
			Metadata: metadata,
		})
	}
	return examples
}
