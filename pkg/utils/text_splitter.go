package utils

import "strings"

// SplitParagraphs splits normalized text into paragraphs on blank lines.
// Whitespace-only paragraphs are dropped; order is preserved.
func SplitParagraphs(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}

// TruncateOldest joins documents (oldest first) into a single prompt body of
// at most maxChars characters. When the total exceeds the limit, paragraphs
// are removed from the oldest document forward, so the newest content is the
// last to be cut. Removed paragraphs are condensed to their first sentence
// and prepended as a single block, budget permitting; the condensed block
// also shrinks oldest-first. Falls back to a hard rune cut when a single
// paragraph still exceeds the budget.
func TruncateOldest(documents []string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}

	const sep = "\n\n"

	var paragraphs []string
	for _, doc := range documents {
		paragraphs = append(paragraphs, SplitParagraphs(doc)...)
	}
	if len(paragraphs) == 0 {
		return ""
	}

	total := 0
	for i, p := range paragraphs {
		total += len(p)
		if i > 0 {
			total += len(sep)
		}
	}

	var dropped []string
	for len(paragraphs) > 1 && total > maxChars {
		dropped = append(dropped, paragraphs[0])
		total -= len(paragraphs[0]) + len(sep)
		paragraphs = paragraphs[1:]
	}

	if total > maxChars {
		// A single paragraph still over budget: keep its tail.
		runes := []rune(paragraphs[0])
		if len(runes) > maxChars {
			runes = runes[len(runes)-maxChars:]
		}
		return string(runes)
	}

	body := strings.Join(paragraphs, sep)
	if len(dropped) == 0 {
		return body
	}

	condensed := make([]string, len(dropped))
	for i, p := range dropped {
		condensed[i] = firstSentence(p)
	}
	// The condensed block competes for the same budget.
	for len(condensed) > 0 {
		notice := condensedPrefix + strings.Join(condensed, " ")
		if len(notice)+len(sep)+len(body) <= maxChars {
			return notice + sep + body
		}
		condensed = condensed[1:]
	}
	return body
}

const (
	condensedPrefix  = "[Earlier content, condensed] "
	maxSentenceRunes = 160
)

func firstSentence(p string) string {
	if i := strings.IndexAny(p, ".!?"); i >= 0 {
		p = p[:i+1]
	}
	runes := []rune(p)
	if len(runes) > maxSentenceRunes {
		runes = runes[:maxSentenceRunes]
	}
	return strings.TrimSpace(string(runes))
}
