package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// wikipedia extracts are capped so one article cannot flood the prompt
const defaultCharLimit = 3000

// WikipediaRetriever pulls article extracts from the MediaWiki API as a
// web fallback when the vector store cannot answer.
type WikipediaRetriever struct {
	BaseURL   string
	CharLimit int
	Client    *http.Client
}

var _ Retriever = &WikipediaRetriever{}

func NewWikipediaRetriever(timeout time.Duration) *WikipediaRetriever {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WikipediaRetriever{
		BaseURL:   "https://en.wikipedia.org/w/api.php",
		CharLimit: defaultCharLimit,
		Client:    &http.Client{Timeout: timeout},
	}
}

type wikiQueryResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

func (r *WikipediaRetriever) Retrieve(ctx context.Context, query string, k int) (*Batch, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("generator", "search")
	params.Set("gsrsearch", query)
	params.Set("gsrlimit", fmt.Sprintf("%d", k))
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("exintro", "0")

	endpoint := fmt.Sprintf("%s?%s", r.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "doc-chat-be/1.0")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var wikiResp wikiQueryResponse
	if err := json.Unmarshal(bodyBytes, &wikiResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	limit := r.CharLimit
	if limit <= 0 {
		limit = defaultCharLimit
	}

	batch := &Batch{}
	for _, page := range wikiResp.Query.Pages {
		extract := page.Extract
		if len(extract) > limit {
			extract = extract[:limit]
		}
		if extract == "" {
			continue
		}
		batch.Passages = append(batch.Passages, Passage{
			FileName: page.Title,
			Content:  extract,
		})
		if len(batch.Passages) >= k {
			break
		}
	}

	return batch, nil
}
