package feedly

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	apierrors "github.com/olgasafonova/feedly-go/internal/errors"
)

// DefaultCount is the page size sent when StreamQuery.Count is nil
const DefaultCount = 1000

// StreamQuery selects a page of a stream.
type StreamQuery struct {
	// StreamID is required, e.g. "feed/http://example.com/rss" or "user/<id>/category/global.all"
	StreamID string

	// NewerThan is an epoch-millisecond lower bound. nil omits it; zero is sent.
	NewerThan *int64

	// Continuation is the token from a previous page. Empty omits it.
	Continuation string

	// Count is forwarded as-is, zero and negatives included. nil sends DefaultCount.
	Count *int

	// UnreadOnly sends unreadOnly=true when set.
	UnreadOnly bool

	// Ranked is "newest" or "oldest". Empty omits it.
	Ranked string
}

// PageSize returns a StreamQuery.Count value for n
func PageSize(n int) *int {
	return &n
}

// values builds the query string for q
func (q StreamQuery) values() (url.Values, error) {
	if q.StreamID == "" {
		return nil, apierrors.NewValidationError("stream_id", "", "stream ID is required")
	}

	count := DefaultCount
	if q.Count != nil {
		count = *q.Count
	}

	params := url.Values{}
	params.Set("streamId", q.StreamID)
	params.Set("count", strconv.Itoa(count))
	if q.NewerThan != nil {
		params.Set("newerThan", strconv.FormatInt(*q.NewerThan, 10))
	}
	if q.Continuation != "" {
		params.Set("continuation", q.Continuation)
	}
	if q.UnreadOnly {
		params.Set("unreadOnly", "true")
	}
	if q.Ranked != "" {
		params.Set("ranked", q.Ranked)
	}
	return params, nil
}

// GetEntryIDs fetches one page of entry IDs for a stream
func (c *Client) GetEntryIDs(ctx context.Context, q StreamQuery) (*Response[EntryIDs], error) {
	params, err := q.values()
	if err != nil {
		return nil, err
	}
	return call[EntryIDs](ctx, c, "get_entry_ids", http.MethodGet, pathStreamIDs, params, nil)
}

// GetFeedContent fetches one page of full entries for a stream
func (c *Client) GetFeedContent(ctx context.Context, q StreamQuery) (*Response[StreamContents], error) {
	params, err := q.values()
	if err != nil {
		return nil, err
	}
	return call[StreamContents](ctx, c, "get_feed_content", http.MethodGet, pathStreamContents, params, nil)
}
