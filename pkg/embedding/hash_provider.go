package embedding

import (
	"context"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// HashProvider is a deterministic bag-of-words embedder using the hashing trick.
// It needs no model server, which makes it the default for tests and offline runs.
type HashProvider struct{}

func NewHashProvider() *HashProvider {
	return &HashProvider{}
}

func (p *HashProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	values := make([]float32, Dimension)

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		h := xxhash.Sum64String(tok)
		idx := h % Dimension
		if h>>63 == 1 {
			values[idx]--
		} else {
			values[idx]++
		}
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{Values: normalizeVector(values)},
	}, nil
}
