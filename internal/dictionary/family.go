package dictionary

import "strings"

// prefixes are recognized derivational prefixes stripped when forming
// family candidates. Single-letter prefixes are deliberately excluded
// so MILE/SMILE do not collide.
var prefixes = []string{
	"UNDER", "OVER", "NON", "MIS", "DIS", "PRE", "UN", "RE", "IN", "IM", "DE",
}

// suffixes are recognized inflectional/derivational suffixes. Every
// suffix a word ends with contributes a candidate, so the order only
// affects the order candidates are collected in.
var suffixes = []string{
	"IES", "ING", "NESS", "MENT", "ABLE", "EST", "ED", "ER", "LY", "Y", "IC", "AL", "ES", "S",
}

// FamilySignatures computes the set of stems that determine whether
// word is considered morphologically related to another word. It
// expands word with recognized prefix/suffix strippings, applies light
// morphological fixups, and stems each candidate with the Porter
// algorithm, collecting every stem of at least 2 letters.
func FamilySignatures(word string) map[string]struct{} {
	word = strings.ToUpper(strings.TrimSpace(word))
	sigs := make(map[string]struct{})
	if word == "" {
		return sigs
	}

	for _, candidate := range expandCandidates(word) {
		s := stem(candidate)
		if len(s) >= 2 {
			sigs[s] = struct{}{}
		}
	}
	return sigs
}

// Overlap reports whether a and b share any family signature.
func Overlap(a, b string) bool {
	sigA := FamilySignatures(a)
	for s := range FamilySignatures(b) {
		if _, ok := sigA[s]; ok {
			return true
		}
	}
	return false
}

func expandCandidates(word string) []string {
	seen := map[string]struct{}{word: {}}
	candidates := []string{word}

	add := func(c string) {
		if len(c) < 2 {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		candidates = append(candidates, c)
	}

	for _, p := range prefixes {
		if strings.HasPrefix(word, p) {
			add(word[len(p):])
		}
	}

	for _, suf := range suffixes {
		if !strings.HasSuffix(word, suf) {
			continue
		}
		base := word[:len(word)-len(suf)]
		if base == "" {
			continue
		}
		add(base)

		switch suf {
		case "IES":
			add(base + "Y")
		case "Y":
			add(base + "I")
		case "ED", "ING", "ER", "EST":
			// silent-e restoration: LIKED -> LIK -> LIKE
			add(base + "E")
			// doubled-consonant collapse: STOPPED -> STOPP -> STOP
			if n := len(base); n >= 2 && base[n-1] == base[n-2] {
				add(base[:n-1])
			}
		}
	}

	return candidates
}
