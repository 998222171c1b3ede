package embedder

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"article-clustering/internal/cluster"
	"article-clustering/internal/domain"
)

var tfidfTokenPattern = regexp.MustCompile(`\p{L}{2,}`)

// TFIDF is an offline encoder for environments without the embedding
// service: it vectorizes each call's corpus with TF-IDF over a
// vocabulary built from that same corpus. Vectors are L2-normalized so
// downstream distances behave like the semantic encoder's. The
// dimensionality varies per call, which is fine for a pipeline that
// never carries vectors across calls.
type TFIDF struct {
	stopWords map[string]struct{}
}

// NewTFIDF creates the offline TF-IDF encoder.
func NewTFIDF() *TFIDF {
	return &TFIDF{stopWords: cluster.StopWordSet()}
}

func (t *TFIDF) Encode(_ context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	docTokens := make([][]string, len(texts))
	df := make(map[string]int)
	for i, text := range texts {
		tokens := t.tokenize(text)
		docTokens[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, fmt.Errorf("no tokens found in corpus")
	}

	// Stable vocabulary ordering so identical corpora embed identically.
	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	n := float64(len(texts))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	vectors := make([][]float32, len(texts))
	for i, tokens := range docTokens {
		vec := make([]float64, len(vocab))
		for _, tok := range tokens {
			vec[index[tok]]++
		}
		if len(tokens) > 0 {
			for j := range vec {
				vec[j] = vec[j] / float64(len(tokens)) * idf[j]
			}
		}
		var norm float64
		for _, v := range vec {
			norm += v * v
		}
		norm = math.Sqrt(norm)

		row := make([]float32, len(vocab))
		for j, v := range vec {
			if norm > 0 {
				row[j] = float32(v / norm)
			}
		}
		vectors[i] = row
	}
	return vectors, nil
}

func (t *TFIDF) Version() string {
	return "tfidf-local"
}

func (t *TFIDF) tokenize(text string) []string {
	raw := tfidfTokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := t.stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

var _ domain.VectorEncoder = (*TFIDF)(nil)
