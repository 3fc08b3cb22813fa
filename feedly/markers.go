package feedly

import (
	"context"
	"net/http"

	apierrors "github.com/olgasafonova/feedly-go/internal/errors"
	"github.com/olgasafonova/feedly-go/metrics"
)

// MarkArticles posts a marker for the given entries. An empty typ means "entries".
// The action is passed through unchecked so newer Feedly actions keep working.
// The reply body is returned as sent; Feedly answers markers with an empty or non-JSON body.
func (c *Client) MarkArticles(ctx context.Context, ids []string, action Action, typ string) (*Response[[]byte], error) {
	if action == "" {
		return nil, apierrors.NewValidationError("action", "", "action is required")
	}
	if typ == "" {
		typ = MarkerTypeEntries
	}
	if ids == nil {
		ids = []string{}
	}

	resp, err := callRaw(ctx, c, "mark_articles", http.MethodPost, pathMarkers, nil, MarkerRequest{
		Action:   action,
		Type:     typ,
		EntryIDs: ids,
	})
	if err != nil {
		return nil, err
	}

	label := string(action)
	if !action.Valid() {
		label = "other"
	}
	metrics.MarkedEntries.WithLabelValues(label).Add(float64(len(ids)))
	return resp, nil
}

// MarkArticlesRead marks entries as read
func (c *Client) MarkArticlesRead(ctx context.Context, ids []string) (*Response[[]byte], error) {
	return c.MarkArticles(ctx, ids, ActionMarkAsRead, MarkerTypeEntries)
}

// MarkArticlesUnread keeps entries unread
func (c *Client) MarkArticlesUnread(ctx context.Context, ids []string) (*Response[[]byte], error) {
	return c.MarkArticles(ctx, ids, ActionKeepUnread, MarkerTypeEntries)
}

// SaveArticles saves entries for later
func (c *Client) SaveArticles(ctx context.Context, ids []string) (*Response[[]byte], error) {
	return c.MarkArticles(ctx, ids, ActionMarkAsSaved, MarkerTypeEntries)
}

// UnsaveArticles removes entries from saved
func (c *Client) UnsaveArticles(ctx context.Context, ids []string) (*Response[[]byte], error) {
	return c.MarkArticles(ctx, ids, ActionMarkAsUnsaved, MarkerTypeEntries)
}
