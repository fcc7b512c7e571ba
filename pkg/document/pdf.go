package document

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

// pdfStringLiteral matches a parenthesized string literal in a PDF content
// stream, honoring escaped characters.
var pdfStringLiteral = regexp.MustCompile(`\((?:\\.|[^\\()])*\)`)

// extractPDFText pulls the text-show operands out of every page's content
// stream. This is a best-effort scrape: it recovers the string literals fed
// to Tj/TJ operators, which is enough for prompt material, not for layout
// reconstruction.
func extractPDFText(path string) (string, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	var pages []string
	for page := 1; page <= ctx.PageCount; page++ {
		r, err := pdfcpu.ExtractPageContent(ctx, page)
		if err != nil || r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		if text := contentStreamText(string(content)); text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("no extractable text found")
	}
	return strings.Join(pages, "\n\n"), nil
}

// contentStreamText collects the string literals of text-show operators from
// one content stream.
func contentStreamText(stream string) string {
	var parts []string

	for _, line := range strings.Split(stream, "\n") {
		if !strings.Contains(line, "Tj") && !strings.Contains(line, "TJ") {
			continue
		}
		for _, literal := range pdfStringLiteral.FindAllString(line, -1) {
			if text := decodePDFString(literal); strings.TrimSpace(text) != "" {
				parts = append(parts, text)
			}
		}
	}

	return strings.Join(parts, " ")
}

// decodePDFString strips the surrounding parentheses and resolves the escape
// sequences defined for PDF literal strings.
func decodePDFString(literal string) string {
	s := strings.TrimSuffix(strings.TrimPrefix(literal, "("), ")")

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}

		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '(', ')', '\\':
			b.WriteByte(s[i])
		case '0', '1', '2', '3', '4', '5', '6', '7':
			// Octal escape, up to three digits
			end := i
			for end < len(s) && end-i < 3 && s[end] >= '0' && s[end] <= '7' {
				end++
			}
			if code, err := strconv.ParseUint(s[i:end], 8, 16); err == nil {
				b.WriteByte(byte(code))
			}
			i = end - 1
		default:
			b.WriteByte(s[i])
		}
	}

	return b.String()
}
