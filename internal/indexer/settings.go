package indexer

type IndexSettings struct {
	ContentDir        string   `json:"content_dir"`
	Parallelism       int      `json:"parallelism"`
	IndexIdentifier   string   `json:"index_identifier"`
	ExcludePatterns   []string `json:"exclude_patterns"`
	FileSizeThreshold int64    `json:"file_size_threshold"`
}
