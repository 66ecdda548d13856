package dto

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// WorkspaceEventPayload is the data carried by live workspace events.
type WorkspaceEventPayload struct {
	PageId  *int64      `json:"page_id,omitempty"`
	BlockId *int64      `json:"block_id,omitempty"`
	MemoId  *int64      `json:"memo_id,omitempty"`
	Entity  interface{} `json:"entity,omitempty"`
}

// MemoEnrichmentRequested asks the consumer to run AI enrichment for a memo.
type MemoEnrichmentRequested struct {
	MemoId int64 `json:"memo_id"`
}
