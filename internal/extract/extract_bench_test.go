package extract

import (
	"strings"
	"testing"
)

// Benchmark FromHTML across page sizes so strategy-chain cost stays visible.
func BenchmarkFromHTML(b *testing.B) {
	small := []byte("<html><head><title>t</title></head><body><article><p>" + benchSentence + "</p></article></body></html>")
	medium := buildArticleHTML(50, 60)
	large := buildArticleHTML(200, 200)

	b.Run("small", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = FromHTML(small)
		}
	})
	b.Run("medium", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = FromHTML(medium)
		}
	})
	b.Run("large", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = FromHTML(large)
		}
	})
}

// BenchmarkFromHTML_NoArticle forces the chain through the weaker strategies
// down to the paragraph aggregator.
func BenchmarkFromHTML_NoArticle(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("<html><head><title>demo</title></head><body>")
	for i := 0; i < 80; i++ {
		sb.WriteString("<p>")
		sb.WriteString(benchSentence)
		sb.WriteString("</p>")
	}
	sb.WriteString("</body></html>")
	page := []byte(sb.String())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FromHTML(page)
	}
}

func buildArticleHTML(paras, itemsPerList int) []byte {
	builder := new(strings.Builder)
	builder.WriteString("<html><head><title>demo</title></head><body><article>")
	for i := 0; i < paras; i++ {
		builder.WriteString("<h2>Heading</h2><p>")
		builder.WriteString(benchSentence)
		builder.WriteString("</p>")
	}
	builder.WriteString("<ul>")
	for i := 0; i < itemsPerList; i++ {
		builder.WriteString("<li>")
		builder.WriteString(benchSentence)
		builder.WriteString("</li>")
	}
	builder.WriteString("</ul></article></body></html>")
	return []byte(builder.String())
}

const benchSentence = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."
