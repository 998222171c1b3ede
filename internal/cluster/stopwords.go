package cluster

import "strings"

// frenchStopWords lists the function words excluded from keyword
// candidacy. The deployed instance clusters French-language news.
var frenchStopWords = []string{
	"le", "la", "les", "de", "du", "des", "un", "une", "et", "est", "en",
	"que", "qui", "dans", "pour", "sur", "avec", "par", "au", "aux", "ce",
	"cette", "ces", "son", "sa", "ses", "leur", "leurs", "nous", "vous",
	"ils", "elles", "ont", "sont", "être", "avoir", "fait", "faire", "plus",
	"tout", "tous", "toute", "toutes", "peut", "même", "aussi", "comme",
	"mais", "ou", "donc", "car", "ni", "ne", "pas", "se", "si", "sans",
}

// StopWordSet returns the configured stop-word list as a lookup set.
func StopWordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(frenchStopWords))
	for _, w := range frenchStopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
