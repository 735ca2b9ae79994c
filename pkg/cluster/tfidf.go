package cluster

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// termPattern matches runs of two or more Unicode letters, digits or underscores.
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TopTerms ranks the vocabulary of texts by summed TF-IDF weight (smoothed idf,
// L2-normalised per text) and returns the best n, ties broken alphabetically.
// English stop words are ignored. It returns nil when no usable term exists.
func TopTerms(texts []string, n int) []string {
	docs := make([]map[string]float64, 0, len(texts))
	df := make(map[string]int)
	for _, text := range texts {
		counts := make(map[string]float64)
		for _, tok := range termPattern.FindAllString(strings.ToLower(text), -1) {
			if stopWords[tok] {
				continue
			}
			counts[tok]++
		}
		for term := range counts {
			df[term]++
		}
		docs = append(docs, counts)
	}
	if len(df) == 0 || n <= 0 {
		return nil
	}

	nDocs := float64(len(docs))
	scores := make(map[string]float64, len(df))
	for _, counts := range docs {
		weights := make(map[string]float64, len(counts))
		norm := 0.0
		for term, tf := range counts {
			idf := math.Log((1+nDocs)/(1+float64(df[term]))) + 1
			w := tf * idf
			weights[term] = w
			norm += w * w
		}
		norm = math.Sqrt(norm)
		for term, w := range weights {
			scores[term] += w / norm
		}
	}

	terms := make([]string, 0, len(scores))
	for term := range scores {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if scores[terms[i]] != scores[terms[j]] {
			return scores[terms[i]] > scores[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

// TitleCase upper-cases every letter that follows a non-letter and lower-cases the rest.
func TitleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
