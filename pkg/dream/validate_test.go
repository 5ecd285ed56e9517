package dream

import (
	"strings"
	"testing"
)

func TestIsAcceptable(t *testing.T) {
	// Long enough content with plenty of indicator terms.
	goodContent := "Rüyada yılan görmek bereket ve bolluk işareti sayılır. " +
		"Tabirciler bu rüyayı hayırlı olarak yorumlar ve kısmet beklendiğine delalet eder."

	tests := []struct {
		name      string
		record    *CleanedRecord
		minLength int
		want      bool
	}{
		{
			name: "acceptable record",
			record: &CleanedRecord{
				CleanedContent: goodContent,
				DreamSymbol:    "yılan",
			},
			minLength: 50,
			want:      true,
		},
		{
			name: "empty content",
			record: &CleanedRecord{
				CleanedContent: "",
				DreamSymbol:    "yılan",
			},
			minLength: 50,
			want:      false,
		},
		{
			name: "content below minimum length",
			record: &CleanedRecord{
				CleanedContent: "Rüyada tabir kısa.",
				DreamSymbol:    "yılan",
			},
			minLength: 50,
			want:      false,
		},
		{
			name: "missing dream symbol",
			record: &CleanedRecord{
				CleanedContent: goodContent,
				DreamSymbol:    "",
			},
			minLength: 50,
			want:      false,
		},
		{
			name: "single indicator is not enough",
			record: &CleanedRecord{
				CleanedContent: strings.Repeat("sıradan kelimeler ", 10) + "bereket",
				DreamSymbol:    "yılan",
			},
			minLength: 50,
			want:      false,
		},
		{
			name: "two indicators pass",
			record: &CleanedRecord{
				CleanedContent: strings.Repeat("sıradan kelimeler ", 10) + "bereket ve kısmet",
				DreamSymbol:    "yılan",
			},
			minLength: 50,
			want:      true,
		},
		{
			name: "uppercase content is folded before matching",
			record: &CleanedRecord{
				CleanedContent: strings.Repeat("sıradan kelimeler ", 10) + "BEREKET VE KISMET",
				DreamSymbol:    "yılan",
			},
			minLength: 50,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAcceptable(tt.record, tt.minLength); got != tt.want {
				t.Errorf("IsAcceptable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAcceptable_RuneLength(t *testing.T) {
	// 10 Turkish runes, 16 bytes. Length checks must count runes.
	content := "şşşşşşşşşş"
	if len(content) <= 10 {
		t.Fatalf("test content must be multi-byte, got %d bytes", len(content))
	}

	record := &CleanedRecord{
		CleanedContent: content + " rüya tabir",
		DreamSymbol:    "yılan",
	}

	// 21 runes total; a 21-rune minimum passes, 22 rejects.
	if !IsAcceptable(record, 21) {
		t.Error("expected record with exactly minimum rune count to pass")
	}
	if IsAcceptable(record, 22) {
		t.Error("expected record below minimum rune count to fail")
	}
}
