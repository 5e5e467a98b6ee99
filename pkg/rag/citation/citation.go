package citation

import (
	"regexp"
	"sort"
	"strconv"

	"doc-chat-be/pkg/rag/retrieve"
	"doc-chat-be/pkg/store"
)

var markerPattern = regexp.MustCompile(`\[(\d+)\]`)

// Extract pulls the [n] markers out of an answer, deduplicated and
// sorted ascending. Answers without markers yield an empty slice.
func Extract(answer string) []int {
	matches := markerPattern.FindAllStringSubmatch(answer, -1)
	if len(matches) == 0 {
		return []int{}
	}

	seen := make(map[int]bool)
	ids := make([]int, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	sort.Ints(ids)
	return ids
}

// Map resolves citation IDs against the batch that produced the answer.
// IDs outside the batch yield an error record instead of failing the
// turn; the model does occasionally hallucinate a marker.
func Map(ids []int, batch *retrieve.Batch) []store.Citation {
	citations := make([]store.Citation, 0, len(ids))
	for _, id := range ids {
		if batch == nil || id < 0 || id >= len(batch.Passages) {
			citations = append(citations, store.Citation{
				SourceID: id,
				Error:    "Invalid citation ID",
			})
			continue
		}
		p := batch.Passages[id]
		citations = append(citations, store.Citation{
			SourceID: id,
			FileName: p.FileName,
			Page:     p.Page,
			Snippet:  p.Content,
		})
	}
	return citations
}
