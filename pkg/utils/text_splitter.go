package utils

import (
	"errors"
	"regexp"
	"strings"
)

const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 100
)

var ErrInvalidChunkParams = errors.New("chunk size must be positive and greater than overlap")

var whitespaceRun = regexp.MustCompile(`\s+`)

// Clean collapses every whitespace run (newlines included) into a single space and trims the ends.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// SplitText splits text into overlapping windows of at most size characters.
// A window that would end mid-text is pulled back to the last space inside it,
// provided that space sits past the middle of the window; otherwise the hard cut stays.
func SplitText(text string, size int, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, ErrInvalidChunkParams
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	total := len(runes)
	step := size - overlap

	var chunks []string
	start := 0
	for start < total {
		end := start + size
		if end > total {
			end = total
		}

		if end < total {
			if lastSpace := lastSpaceIndex(runes[start:end]); float64(lastSpace) > float64(size)*0.5 {
				end = start + lastSpace
			}
		}
		if end <= start {
			end = start + size
			if end > total {
				end = total
			}
		}

		chunks = append(chunks, string(runes[start:end]))
		if end == total {
			break
		}

		start += step
		if start >= end {
			start = end
		}
	}

	return chunks, nil
}

func lastSpaceIndex(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == ' ' {
			return i
		}
	}
	return -1
}
