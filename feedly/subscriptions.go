package feedly

import (
	"context"
	"net/http"
	"net/url"

	apierrors "github.com/olgasafonova/feedly-go/internal/errors"
)

// GetUserSubscriptions lists the feeds the user follows
func (c *Client) GetUserSubscriptions(ctx context.Context) (*Response[[]Subscription], error) {
	return call[[]Subscription](ctx, c, "get_user_subscriptions", http.MethodGet, pathSubscriptions, nil, nil)
}

// GetCategories lists the user's categories
func (c *Client) GetCategories(ctx context.Context) (*Response[[]Category], error) {
	return call[[]Category](ctx, c, "get_categories", http.MethodGet, pathCategories, nil, nil)
}

// GetTags lists the user's tags
func (c *Client) GetTags(ctx context.Context) (*Response[[]Tag], error) {
	return call[[]Tag](ctx, c, "get_tags", http.MethodGet, pathTags, nil, nil)
}

// GetPreferences returns the user's application preferences
func (c *Client) GetPreferences(ctx context.Context) (*Response[map[string]string], error) {
	return call[map[string]string](ctx, c, "get_preferences", http.MethodGet, pathPreferences, nil, nil)
}

// GetFeed returns metadata for a feed ID such as "feed/http://example.com/rss"
func (c *Client) GetFeed(ctx context.Context, feedID string) (*Response[Feed], error) {
	if feedID == "" {
		return nil, apierrors.NewValidationError("feed_id", "", "feed ID is required")
	}
	return call[Feed](ctx, c, "get_feed", http.MethodGet, pathFeeds+"/"+url.PathEscape(feedID), nil, nil)
}
