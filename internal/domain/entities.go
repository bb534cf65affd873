package domain

// Document describes one uploaded file tracked by the registry.
type Document struct {
	Name  string `json:"name"`
	DocID string `json:"doc_id"`
	Path  string `json:"path"`
}

// Chunk is a bounded slice of a document's extracted text, the unit of
// embedding and retrieval. Chunks are immutable once created.
type Chunk struct {
	Text   string
	Source string
	Index  int
	DocID  string
}

// SearchResult is one record returned by the semantic index.
type SearchResult struct {
	Text     string
	Metadata map[string]string
	Score    float64
}

// Stats holds the process-wide usage counters, persisted after every
// answered question.
type Stats struct {
	ConversationCount int `json:"conversation_count"`
}

// Answer is the retrieval service's hand-off to the LLM caller.
// HasDocuments is false when nothing has been uploaded yet; Found is false
// when the search returned no records for the query.
type Answer struct {
	Context      string
	Sources      []string
	HasDocuments bool
	Found        bool
}
