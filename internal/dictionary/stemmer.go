package dictionary

import "strings"

// stem is a compact hand-port of the Porter stemming algorithm
// (Porter, 1980). It is deliberately standard-library only: see
// DESIGN.md for why no retrieved dependency covers English stemming.
// It operates on uppercase A-Z input and returns an uppercase stem.
func stem(word string) string {
	w := []byte(strings.ToUpper(word))
	if len(w) <= 2 {
		return string(w)
	}

	w = step1a(w)
	w = step1b(w)
	w = step1c(w)
	w = step2(w)
	w = step3(w)
	w = step4(w)
	w = step5(w)
	return string(w)
}

func isVowel(w []byte, i int) bool {
	switch w[i] {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	case 'Y':
		return i == 0 || !isVowel(w, i-1)
	}
	return false
}

// measure counts the number of VC sequences in w (the Porter "m").
func measure(w []byte) int {
	n := 0
	i := 0
	// skip leading consonants
	for i < len(w) && !isVowel(w, i) {
		i++
	}
	for i < len(w) {
		for i < len(w) && isVowel(w, i) {
			i++
		}
		if i >= len(w) {
			break
		}
		for i < len(w) && !isVowel(w, i) {
			i++
		}
		n++
	}
	return n
}

func containsVowel(w []byte) bool {
	for i := range w {
		if isVowel(w, i) {
			return true
		}
	}
	return false
}

func endsDoubleConsonant(w []byte) bool {
	n := len(w)
	if n < 2 {
		return false
	}
	a, b := w[n-1], w[n-2]
	if a != b {
		return false
	}
	return !isVowel(w, n-1)
}

// endsCVC reports the *o condition: ends consonant-vowel-consonant
// where the final consonant is not W, X or Y.
func endsCVC(w []byte) bool {
	n := len(w)
	if n < 3 {
		return false
	}
	if isVowel(w, n-3) || !isVowel(w, n-2) || isVowel(w, n-1) {
		return false
	}
	switch w[n-1] {
	case 'W', 'X', 'Y':
		return false
	}
	return true
}

func hasSuffix(w []byte, suf string) bool {
	return len(w) >= len(suf) && string(w[len(w)-len(suf):]) == suf
}

func trimSuffix(w []byte, n int) []byte {
	return w[:len(w)-n]
}

func step1a(w []byte) []byte {
	switch {
	case hasSuffix(w, "SSES"):
		return append(trimSuffix(w, 4), 'S', 'S')
	case hasSuffix(w, "IES"):
		return append(trimSuffix(w, 3), 'I')
	case hasSuffix(w, "SS"):
		return w
	case hasSuffix(w, "S"):
		return trimSuffix(w, 1)
	}
	return w
}

func step1b(w []byte) []byte {
	switch {
	case hasSuffix(w, "EED"):
		stem := trimSuffix(w, 3)
		if measure(stem) > 0 {
			return append(stem, 'E', 'E')
		}
		return w
	case hasSuffix(w, "ED"):
		stem := trimSuffix(w, 2)
		if containsVowel(stem) {
			return step1bFixup(stem)
		}
		return w
	case hasSuffix(w, "ING"):
		stem := trimSuffix(w, 3)
		if containsVowel(stem) {
			return step1bFixup(stem)
		}
		return w
	}
	return w
}

func step1bFixup(w []byte) []byte {
	switch {
	case hasSuffix(w, "AT"), hasSuffix(w, "BL"), hasSuffix(w, "IZ"):
		return append(w, 'E')
	case endsDoubleConsonant(w) && w[len(w)-1] != 'L' && w[len(w)-1] != 'S' && w[len(w)-1] != 'Z':
		return trimSuffix(w, 1)
	case measure(w) == 1 && endsCVC(w):
		return append(w, 'E')
	}
	return w
}

func step1c(w []byte) []byte {
	if hasSuffix(w, "Y") {
		stem := trimSuffix(w, 1)
		if containsVowel(stem) {
			return append(stem, 'I')
		}
	}
	return w
}

var step2Suffixes = []struct {
	from, to string
}{
	{"ATIONAL", "ATE"}, {"TIONAL", "TION"}, {"ENCI", "ENCE"}, {"ANCI", "ANCE"},
	{"IZER", "IZE"}, {"ABLI", "ABLE"}, {"ALLI", "AL"}, {"ENTLI", "ENT"},
	{"ELI", "E"}, {"OUSLI", "OUS"}, {"IZATION", "IZE"}, {"ATION", "ATE"},
	{"ATOR", "ATE"}, {"ALISM", "AL"}, {"IVENESS", "IVE"}, {"FULNESS", "FUL"},
	{"OUSNESS", "OUS"}, {"ALITI", "AL"}, {"IVITI", "IVE"}, {"BILITI", "BLE"},
}

func step2(w []byte) []byte {
	for _, s := range step2Suffixes {
		if hasSuffix(w, s.from) {
			stem := trimSuffix(w, len(s.from))
			if measure(stem) > 0 {
				return append(stem, []byte(s.to)...)
			}
			return w
		}
	}
	return w
}

var step3Suffixes = []struct {
	from, to string
}{
	{"ICATE", "IC"}, {"ATIVE", ""}, {"ALIZE", "AL"}, {"ICITI", "IC"},
	{"ICAL", "IC"}, {"FUL", ""}, {"NESS", ""},
}

func step3(w []byte) []byte {
	for _, s := range step3Suffixes {
		if hasSuffix(w, s.from) {
			stem := trimSuffix(w, len(s.from))
			if measure(stem) > 0 {
				return append(stem, []byte(s.to)...)
			}
			return w
		}
	}
	return w
}

var step4Suffixes = []string{
	"AL", "ANCE", "ENCE", "ER", "IC", "ABLE", "IBLE", "ANT", "EMENT",
	"MENT", "ENT", "OU", "ISM", "ATE", "ITI", "OUS", "IVE", "IZE",
}

func step4(w []byte) []byte {
	for _, suf := range step4Suffixes {
		if !hasSuffix(w, suf) {
			continue
		}
		stem := trimSuffix(w, len(suf))
		if suf == "ION" {
			if len(stem) > 0 && (stem[len(stem)-1] == 'S' || stem[len(stem)-1] == 'T') && measure(stem) > 1 {
				return stem
			}
			return w
		}
		if measure(stem) > 1 {
			return stem
		}
		return w
	}
	if hasSuffix(w, "SION") || hasSuffix(w, "TION") {
		stem := trimSuffix(w, 3)
		if measure(stem) > 1 {
			return stem
		}
	}
	return w
}

func step5(w []byte) []byte {
	if hasSuffix(w, "E") {
		stem := trimSuffix(w, 1)
		m := measure(stem)
		if m > 1 || (m == 1 && !endsCVC(stem)) {
			w = stem
		}
	}
	if endsDoubleConsonant(w) && w[len(w)-1] == 'L' && measure(w) > 1 {
		w = trimSuffix(w, 1)
	}
	return w
}
