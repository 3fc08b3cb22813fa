package feedly

import (
	"context"
	"net/http"
	"net/url"

	apierrors "github.com/olgasafonova/feedly-go/internal/errors"
)

// GetEntriesFromIDs fetches full entries for a list of IDs.
// The body is the bare JSON array of IDs; a nil slice is sent as [].
func (c *Client) GetEntriesFromIDs(ctx context.Context, ids []string) (*Response[[]Entry], error) {
	if ids == nil {
		ids = []string{}
	}
	return call[[]Entry](ctx, c, "get_entries_from_ids", http.MethodPost, pathEntriesMget, nil, ids)
}

// GetEntry fetches a single entry. Feedly answers with a one-element array.
func (c *Client) GetEntry(ctx context.Context, entryID string) (*Response[[]Entry], error) {
	if entryID == "" {
		return nil, apierrors.NewValidationError("entry_id", "", "entry ID is required")
	}
	return call[[]Entry](ctx, c, "get_entry", http.MethodGet, pathEntries+"/"+url.PathEscape(entryID), nil, nil)
}
