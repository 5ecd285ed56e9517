package dream

import (
	"strings"
	"unicode/utf8"

	"github.com/tabir/tabir/internal/turkish"
)

// turkishIndicators is the fixed vocabulary of dream-interpretation terms
// used to tell genuine interpretation text from portal noise. Matching is
// substring containment on the case-folded content, which tolerates
// inflected forms ("rüyasında" matches "rüya").
var turkishIndicators = []string{
	// Temel rüya kelimeleri
	"rüya", "rüyada", "rüyası", "rüyalar",
	// Görme fiilleri
	"görmek", "görür", "görenin", "gören",
	// Yorum ve anlam kelimeleri
	"yorumlanır", "yorumu", "yorumlar", "delalet", "delalet eder",
	"tabir", "tabiri", "anlamı", "anlama gelir", "manası",
	"işaret", "işareti", "alamet", "belirtisi",
	// Dini ve kültürel terimler
	"hayırlı", "hayırsız", "müjde", "uyarı", "bereket", "şifa",
	"rahmet", "kısmet", "nasip", "rızık", "sevap", "günah",
	"haram", "helal",
	// Duygusal durumlar
	"sevinç", "üzüntü", "korku", "endişe", "huzur", "sıkıntı",
	"mutluluk", "kaygı",
	// Yaygın rüya yorumu ifadeleri
	"ileride", "gelecekte", "yakında", "başına gelecek",
	"karşılaşacak", "yaşayacak", "elde edecek",
}

// IsAcceptable reports whether a cleaned record meets the quality bar for
// training. A record is rejected when its content is empty or shorter
// than minContentLength runes, when no dream symbol was extracted, or
// when fewer than two distinct indicator terms occur in the content.
func IsAcceptable(record *CleanedRecord, minContentLength int) bool {
	if record.CleanedContent == "" {
		return false
	}
	if utf8.RuneCountInString(record.CleanedContent) < minContentLength {
		return false
	}
	if record.DreamSymbol == "" {
		return false
	}

	content := turkish.Lower(record.CleanedContent)
	indicators := 0
	for _, indicator := range turkishIndicators {
		if strings.Contains(content, indicator) {
			indicators++
			if indicators >= 2 {
				return true
			}
		}
	}

	return false
}
