package extract_engine

import (
	"regexp"
	"strings"
	"unicode"
)

// nameScanLines bounds the scan: names sit near the top of a resume.
const nameScanLines = 10

// skipPatterns reject lines that are headers or contact info rather
// than a name.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(resume|cv|curriculum)`),
	regexp.MustCompile(`^(phone|email|address|linkedin)`),
	regexp.MustCompile(`@`),
	regexp.MustCompile(`\d{5,}`),
	regexp.MustCompile(`^(objective|summary|experience)`),
}

var (
	hexPrefix     = regexp.MustCompile(`^[a-f0-9]{8}_`)
	resumeSuffix  = regexp.MustCompile(`(?i)[-_]?(resume|cv|final|v\d+)$`)
	separatorRuns = regexp.MustCompile(`[-_]`)
)

// RecoverName derives the candidate's name from recovered text,
// falling back to a cleaned filename stem when no line qualifies.
func RecoverName(text, fallbackStem string) string {
	if text == "" {
		return cleanFallbackName(fallbackStem)
	}

	lines := strings.Split(text, "\n")
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 3 {
			continue
		}

		lower := strings.ToLower(line)
		skip := false
		for _, pattern := range skipPatterns {
			if pattern.MatchString(lower) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		words := strings.Fields(line)
		if len(words) >= 1 && len(words) <= 4 && alphaSpaceRatio(line) > 0.8 {
			return titleCase(line)
		}
	}

	return cleanFallbackName(fallbackStem)
}

// cleanFallbackName turns a sanitized filename stem into a plausible
// name: the random hex prefix, trailing resume/version tokens and
// separators all go.
func cleanFallbackName(stem string) string {
	name := hexPrefix.ReplaceAllString(stem, "")
	name = resumeSuffix.ReplaceAllString(name, "")
	name = separatorRuns.ReplaceAllString(name, " ")
	return titleCase(name)
}

// alphaSpaceRatio is the fraction of characters that are alphabetic
// or spaces.
func alphaSpaceRatio(line string) float64 {
	runes := []rune(line)
	if len(runes) == 0 {
		return 0
	}
	count := 0
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			count++
		}
	}
	return float64(count) / float64(len(runes))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
