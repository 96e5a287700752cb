// ABOUTME: Sentence splitting for article text
// ABOUTME: Keeps quoted passages, abbreviations and initials inside one sentence

package profiles

import (
	"regexp"
	"strings"
	"unicode"
)

var speechVerbRe = regexp.MustCompile(`(?i)^(?:` + speechVerbs + `)\b`)

// SplitSentences breaks text into sentences. Lines are always boundaries;
// within a line a terminator ends a sentence unless it sits inside a quote,
// belongs to an abbreviation or initial, or is not followed by whitespace.
func SplitSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		sentences = append(sentences, splitLine(line)...)
	}
	return sentences
}

func splitLine(line string) []string {
	runes := []rune(line)
	var (
		out      []string
		start    int
		straight bool
		curly    int
	)

	emit := func(end int) {
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			out = append(out, s)
		}
		start = end
	}

	for i, r := range runes {
		atBoundary := i+1 == len(runes) || unicode.IsSpace(runes[i+1])

		switch r {
		case '"':
			// An opening quote after a digit or with no partner later in the
			// line is an inch mark or a typo, not the start of a quotation
			if !straight && (i > 0 && unicode.IsDigit(runes[i-1]) || !strings.ContainsRune(string(runes[i+1:]), '"')) {
				continue
			}
			straight = !straight
			if !straight && atBoundary && closesSentence(runes, i) {
				emit(i + 1)
			}
		case '“':
			curly++
		case '”':
			if curly > 0 {
				curly--
			}
			if curly == 0 && atBoundary && closesSentence(runes, i) {
				emit(i + 1)
			}
		case '.', '!', '?':
			if straight || curly > 0 || !atBoundary {
				continue
			}
			if r == '.' && endsWithAbbreviation(runes[start:i]) {
				continue
			}
			emit(i + 1)
		}
	}
	emit(len(runes))
	return out
}

// closesSentence reports whether the quote at i ends a sentence: the quoted
// text ends with a terminator and the next words are not an attribution
func closesSentence(runes []rune, i int) bool {
	if i == 0 {
		return false
	}
	switch runes[i-1] {
	case '.', '!', '?':
	default:
		return false
	}

	rest := strings.TrimSpace(string(runes[i+1:]))
	if rest == "" {
		return true
	}
	first := []rune(rest)[0]
	if !unicode.IsUpper(first) {
		return false
	}

	words := strings.Fields(rest)
	for j := 0; j < len(words) && j < 4; j++ {
		if speechVerbRe.MatchString(strings.Join(words[j:], " ")) {
			return false
		}
	}
	return true
}

func endsWithAbbreviation(prefix []rune) bool {
	s := strings.TrimSpace(string(prefix))
	if idx := strings.LastIndexAny(s, " (\"“"); idx >= 0 {
		s = s[idx+1:]
	}
	if s == "" {
		return false
	}

	runes := []rune(s)
	if len(runes) == 1 && unicode.IsUpper(runes[0]) {
		return true
	}
	// Dotted forms such as U.S or e.g
	if strings.Contains(s, ".") {
		return true
	}
	return abbreviations[strings.ToLower(s)]
}
