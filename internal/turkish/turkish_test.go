package turkish

import "testing"

func TestLower(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ascii", in: "KELIME", want: "kelıme"},
		{name: "dotted capital I", in: "İSTANBUL", want: "istanbul"},
		{name: "dotless capital I", in: "ISPARTA", want: "ısparta"},
		{name: "mixed", in: "Rüyada KÖPEK Görmek", want: "rüyada köpek görmek"},
		{name: "already lower", in: "rüya tabiri", want: "rüya tabiri"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lower(tt.in); got != tt.want {
				t.Errorf("Lower(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		substr string
		want   bool
	}{
		{name: "exact", s: "rüyada köpek görmek", substr: "köpek", want: true},
		{name: "case folded", s: "Rüyada KÖPEK Görmek", substr: "köpek", want: true},
		{name: "dotted I folds to i", s: "İNCİ kolye", substr: "inci", want: true},
		{name: "dotless I stays distinct", s: "ISPARTA gülü", substr: "isparta", want: false},
		{name: "absent", s: "rüyada köpek görmek", substr: "kedi", want: false},
		{name: "empty substr", s: "anything", substr: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.s, tt.substr); got != tt.want {
				t.Errorf("Contains(%q, %q) = %v, want %v", tt.s, tt.substr, got, tt.want)
			}
		})
	}
}
