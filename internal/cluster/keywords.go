package cluster

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"article-clustering/internal/domain"
)

const (
	// MaxKeywords caps the keyword list emitted per topic group.
	MaxKeywords = 5
	// MinDocFrequency is the number of distinct corpus documents a term
	// must appear in to be a keyword candidate. Singleton terms are
	// noise, not topics.
	MinDocFrequency = 2
	// topicNameTerms is how many top keywords make up the topic name.
	topicNameTerms = 3
)

var tokenPattern = regexp.MustCompile(`\p{L}{2,}`)

// Topic is the derived description of one group: up to MaxKeywords
// discriminative terms and a short human-readable name.
type Topic struct {
	Keywords []string
	Name     string
}

// Extractor ranks terms that are frequent within a group but rare
// across the whole corpus (class-based TF-IDF). Candidates are
// unigrams and bigrams over stop-word-filtered tokens.
type Extractor struct {
	stopWords map[string]struct{}
}

// NewExtractor creates a keyword extractor with the configured
// language's stop-word list.
func NewExtractor() *Extractor {
	return &Extractor{stopWords: StopWordSet()}
}

// Extract computes a Topic for every non-noise label present in labels.
// texts and labels are index-aligned. Groups with no eligible terms get
// an empty keyword list and a label-based fallback name.
func (e *Extractor) Extract(texts []string, labels []int) map[int]Topic {
	docTerms := make([][]string, len(texts))
	for i, text := range texts {
		docTerms[i] = e.terms(text)
	}

	// Corpus document frequency per term.
	df := make(map[string]int)
	for _, terms := range docTerms {
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	groups := make(map[int][]int)
	for i, l := range labels {
		if l == domain.NoiseLabel {
			continue
		}
		groups[l] = append(groups[l], i)
	}

	totalDocs := float64(len(texts))
	topics := make(map[int]Topic, len(groups))
	for label, members := range groups {
		tf := make(map[string]int)
		total := 0
		for _, i := range members {
			for _, t := range docTerms[i] {
				if df[t] < MinDocFrequency {
					continue
				}
				tf[t]++
				total++
			}
		}

		type scored struct {
			term  string
			score float64
		}
		ranked := make([]scored, 0, len(tf))
		for t, count := range tf {
			idf := math.Log(1 + totalDocs/float64(df[t]))
			ranked = append(ranked, scored{
				term:  t,
				score: float64(count) / float64(total) * idf,
			})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].score == ranked[j].score {
				return ranked[i].term < ranked[j].term
			}
			return ranked[i].score > ranked[j].score
		})

		keywords := make([]string, 0, MaxKeywords)
		for _, s := range ranked {
			if len(keywords) == MaxKeywords {
				break
			}
			keywords = append(keywords, s.term)
		}

		topics[label] = Topic{
			Keywords: keywords,
			Name:     topicName(label, keywords),
		}
	}
	return topics
}

// terms tokenizes one document into keyword candidates: lowercased
// letter runs of length >= 2 minus stop words, plus bigrams over the
// kept tokens.
func (e *Extractor) terms(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, stop := e.stopWords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}

	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

func topicName(label int, keywords []string) string {
	if len(keywords) == 0 {
		return fmt.Sprintf("Topic %d", label)
	}
	n := topicNameTerms
	if n > len(keywords) {
		n = len(keywords)
	}
	return fmt.Sprintf("%d_%s", label, strings.Join(keywords[:n], "_"))
}
