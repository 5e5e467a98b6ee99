package dto

type IntentCountDTO struct {
	Intent string `json:"intent"`
	Count  int64  `json:"count"`
}

type DashboardStatsResponse struct {
	TotalDocuments   int64            `json:"total_documents"`
	ReadyDocuments   int64            `json:"ready_documents"`
	TotalChunks      int64            `json:"total_chunks"`
	TotalQueries     int64            `json:"total_queries"`
	QueriesLast7Days int64            `json:"queries_last_7_days"`
	AverageLatencyMs float64          `json:"average_latency_ms"`
	IntentBreakdown  []IntentCountDTO `json:"intent_breakdown"`
	ActiveChats      int              `json:"active_chats"`
}
