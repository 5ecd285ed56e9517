package htmltext

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Cleaner extracts plain text from portal HTML.
// It implements the cleaner.Cleaner interface and is safe for
// concurrent use; batch processing shares one instance across workers.
type Cleaner struct {
	config *Config

	mu    sync.Mutex
	stats *Stats
}

// New creates a new Cleaner with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Cleaner{
		config: config,
	}
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "htmltext"
}

// Clean extracts plain text from the input HTML.
// This method implements the cleaner.Cleaner interface. It never returns
// an error: input that cannot be parsed degrades to regex tag stripping.
func (c *Cleaner) Clean(htmlContent string) (string, error) {
	return c.CleanWithStats(htmlContent).Content, nil
}

// CleanWithStats performs cleaning and returns detailed stats.
func (c *Cleaner) CleanWithStats(htmlContent string) *Result {
	startTime := time.Now()
	result := &Result{
		Stats: NewStats(),
	}
	result.Stats.InputBytes = len(htmlContent)

	if htmlContent == "" {
		result.Stats.TotalDuration = time.Since(startTime)
		c.setStats(result.Stats)
		return result
	}

	parseStart := time.Now()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	result.Stats.ParseDuration = time.Since(parseStart)

	if err != nil {
		result.Content = c.fallbackClean(htmlContent)
		result.Stats.UsedFallback = true
		result.AddWarning("parse", "HTML parse failed, stripping tags instead", err.Error())
		result.Stats.OutputBytes = len(result.Content)
		result.Stats.TotalDuration = time.Since(startTime)
		c.setStats(result.Stats)
		return result
	}

	c.removeBySelectors(doc, result)

	text := textContent(doc)
	if c.config.CollapseWhitespace {
		text = whitespaceRegex.ReplaceAllString(text, " ")
	}
	if c.config.TrimOutput {
		text = strings.TrimSpace(text)
	}
	if c.config.UnescapeEntities {
		// The parser already decodes entities in text nodes; this second
		// pass catches double-escaped ones like &amp;nbsp;.
		text = html.UnescapeString(text)
	}

	result.Content = text
	result.Stats.OutputBytes = len(text)
	result.Stats.TotalDuration = time.Since(startTime)
	c.setStats(result.Stats)

	return result
}

// Stats returns the stats from the last Clean operation.
func (c *Cleaner) Stats() *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cleaner) setStats(s *Stats) {
	c.mu.Lock()
	c.stats = s
	c.mu.Unlock()
}

// removeBySelectors removes elements matching the configured selectors.
func (c *Cleaner) removeBySelectors(doc *goquery.Document, result *Result) {
	for _, selector := range c.config.RemoveSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			result.Stats.RecordRemoval(goquery.NodeName(s))
			s.Remove()
		})
	}
}

// textContent collects the text nodes of the document, separated by
// spaces so that words from adjacent elements do not run together.
func textContent(doc *goquery.Document) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return sb.String()
}

// tagRegex matches HTML tags for the fallback path.
var tagRegex = regexp.MustCompile(`<[^>]*>`)

// whitespaceRegex matches runs of whitespace characters.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// fallbackClean strips tags with a regex when parsing is impossible.
func (c *Cleaner) fallbackClean(htmlContent string) string {
	text := tagRegex.ReplaceAllString(htmlContent, "")
	if c.config.UnescapeEntities {
		text = html.UnescapeString(text)
	}
	if c.config.CollapseWhitespace {
		text = whitespaceRegex.ReplaceAllString(text, " ")
	}
	if c.config.TrimOutput {
		text = strings.TrimSpace(text)
	}
	return text
}
