package port

// Extractor converts a raw document blob of a known format into plain text.
type Extractor interface {
	// Extract returns the best-effort plain-text transcription of data.
	// The file type is determined from the fileName extension.
	Extract(data []byte, fileName string) (string, error)
}

// Chunker splits plain text into overlapping, size-bounded segments.
type Chunker interface {
	Split(text string) []string
}
