package constant

// Log module names.
const (
	ModuleAuth      = "auth"
	ModuleDocument  = "document"
	ModuleIndexer   = "indexer"
	ModuleChat      = "chat"
	ModuleQuery     = "query"
	ModuleDashboard = "dashboard"
	ModuleWatcher   = "watcher"
)

// Indexing pulls summaries from the first pages only, matching the
// document summarizer prompt.
const SummaryPageLimit = 3

// Chunking geometry for PDF text.
const (
	ChunkSize    = 1000
	ChunkOverlap = 150
)
