package render

import (
	"strings"
	"unicode"

	xhtml "golang.org/x/net/html"
)

// markupTags are the elements that mark a payload as HTML. Anything else
// in angle brackets, such as an address, is shown as written.
var markupTags = map[string]bool{
	"html": true, "head": true, "body": true, "title": true, "script": true, "style": true,
	"p": true, "div": true, "span": true, "br": true, "hr": true, "pre": true, "code": true,
	"a": true, "b": true, "i": true, "em": true, "strong": true,
	"ul": true, "ol": true, "li": true, "h1": true, "h2": true, "h3": true,
}

// Text converts a server payload to terminal text wrapped at width.
// Payloads are usually plain sentences and are kept verbatim. Some carry
// light HTML: paragraphs, line breaks, list items and links. Those are
// flattened and their entities decoded.
func Text(raw string, width int) string {
	if raw == "" {
		return ""
	}
	if !isMarkup(raw) {
		return wrapText(strings.TrimSpace(raw), width)
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	var anchorURL string
	skip := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return wrapText(strings.TrimSpace(sb.String()), width)

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "script", "style", "head", "title":
				if tt == xhtml.StartTagToken {
					skip++
				}
			case "p", "div", "h1", "h2", "h3":
				if sb.Len() > 0 {
					sb.WriteString("\n\n")
				}
			case "br":
				sb.WriteString("\n")
			case "li":
				sb.WriteString("\n- ")
			case "a":
				for _, attr := range t.Attr {
					if attr.Key == "href" {
						anchorURL = attr.Val
					}
				}
			}

		case xhtml.EndTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "script", "style", "head", "title":
				if skip > 0 {
					skip--
				}
			case "a":
				if anchorURL != "" && !strings.HasSuffix(strings.TrimSpace(sb.String()), anchorURL) {
					sb.WriteString(" [")
					sb.WriteString(anchorURL)
					sb.WriteString("]")
				}
				anchorURL = ""
			}

		case xhtml.TextToken:
			if skip > 0 {
				continue
			}
			sb.WriteString(collapse(tokenizer.Token().Data))
		}
	}
}

func isMarkup(raw string) bool {
	if !strings.Contains(raw, "<") {
		return false
	}
	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	for {
		switch tokenizer.Next() {
		case xhtml.ErrorToken:
			return false
		case xhtml.DoctypeToken:
			return true
		case xhtml.StartTagToken, xhtml.EndTagToken, xhtml.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if markupTags[string(name)] {
				return true
			}
		}
	}
}

// Line flattens a payload to a single line of at most n runes, for lists.
func Line(raw string, n int) string {
	s := strings.Join(strings.Fields(Text(raw, 0)), " ")
	r := []rune(s)
	if n > 0 && len(r) > n {
		if n <= 3 {
			return string(r[:n])
		}
		return string(r[:n-3]) + "..."
	}
	return s
}

// collapse squeezes runs of whitespace to one space, keeping a single
// leading or trailing space so adjacent inline tags don't glue words.
func collapse(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		if s != "" {
			return " "
		}
		return ""
	}
	out := strings.Join(words, " ")
	if strings.TrimLeftFunc(s, unicode.IsSpace) != s {
		out = " " + out
	}
	if strings.TrimRightFunc(s, unicode.IsSpace) != s {
		out += " "
	}
	return out
}

// wrapText performs simple word wrapping to the given width.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}
		lineLen := 0
		for i, word := range words {
			wlen := len([]rune(word))
			if i > 0 && lineLen+1+wlen > width {
				result.WriteString("\n")
				lineLen = 0
			} else if i > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wlen
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}
