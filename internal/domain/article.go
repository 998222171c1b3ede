package domain

// ArticleInput is a single article record supplied by the caller.
// IDs are assumed unique within one request; uniqueness is not enforced.
type ArticleInput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// DocumentUnit is a clustering-ready text derived from one article.
// InputIndex points back to the position in the original request, so
// every downstream slice (embeddings, reduced vectors, labels) stays
// index-aligned with the prepared document sequence.
type DocumentUnit struct {
	ArticleID  string
	Text       string
	InputIndex int
}

// NoiseLabel is the sentinel assigned to documents that fall in
// low-density regions and belong to no topic group.
const NoiseLabel = -1

// ClusterResult is one topical group in the final output.
type ClusterResult struct {
	ID         string   `json:"id"`
	ArticleIDs []string `json:"articleIds"`
	Keywords   []string `json:"keywords"`
	TopicName  string   `json:"topicName"`
	Size       int      `json:"size"`
}

// PipelineResult is the outcome of one clustering call.
//
// ShortCircuit marks the insufficient-input outcome: clusters and
// message are meaningful, counts and UnclusteredIDs are not populated.
// The transport layer renders the two cases as distinct JSON shapes.
type PipelineResult struct {
	Clusters          []ClusterResult
	UnclusteredIDs    []string
	TotalArticles     int
	ClusteredArticles int
	Message           string
	ShortCircuit      bool
}
