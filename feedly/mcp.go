package feedly

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	apierrors "github.com/olgasafonova/feedly-go/internal/errors"
)

const (
	// contentsPageSize is the default page for stream contents in tool output
	contentsPageSize = 20

	summaryMaxLen = 500
)

// ListSubscriptionsMCP wraps GetUserSubscriptions for MCP tool handlers
func (c *Client) ListSubscriptionsMCP(ctx context.Context, args ListSubscriptionsArgs) (ListSubscriptionsResult, error) {
	resp, err := c.GetUserSubscriptions(ctx)
	if err != nil {
		return ListSubscriptionsResult{}, err
	}

	result := ListSubscriptionsResult{Subscriptions: []SubscriptionSummary{}}
	for _, sub := range resp.Body {
		if args.Category != "" && !inCategory(sub, args.Category) {
			continue
		}
		result.Subscriptions = append(result.Subscriptions, toSubscriptionSummary(sub))
	}
	result.Total = len(result.Subscriptions)
	return result, nil
}

// ListCategoriesMCP wraps GetCategories and, optionally, GetTags
func (c *Client) ListCategoriesMCP(ctx context.Context, args ListCategoriesArgs) (ListCategoriesResult, error) {
	cats, err := c.GetCategories(ctx)
	if err != nil {
		return ListCategoriesResult{}, err
	}
	result := ListCategoriesResult{Categories: cats.Body}
	if result.Categories == nil {
		result.Categories = []Category{}
	}

	if args.IncludeTags {
		tags, err := c.GetTags(ctx)
		if err != nil {
			return ListCategoriesResult{}, err
		}
		result.Tags = tags.Body
	}
	return result, nil
}

// GetEntryIDsMCP wraps GetEntryIDs for MCP tool handlers
func (c *Client) GetEntryIDsMCP(ctx context.Context, args StreamArgs) (GetEntryIDsResult, error) {
	resp, err := c.GetEntryIDs(ctx, args.query(DefaultCount))
	if err != nil {
		return GetEntryIDsResult{}, err
	}

	ids := resp.Body.IDs
	if ids == nil {
		ids = []string{}
	}
	return GetEntryIDsResult{IDs: ids, Continuation: resp.Body.Continuation}, nil
}

// GetStreamContentsMCP wraps GetFeedContent for MCP tool handlers
func (c *Client) GetStreamContentsMCP(ctx context.Context, args StreamArgs) (GetStreamContentsResult, error) {
	resp, err := c.GetFeedContent(ctx, args.query(contentsPageSize))
	if err != nil {
		return GetStreamContentsResult{}, err
	}

	result := GetStreamContentsResult{
		StreamID:     resp.Body.ID,
		Title:        resp.Body.Title,
		Entries:      toEntrySummaries(resp.Body.Items),
		Continuation: resp.Body.Continuation,
	}
	if result.StreamID == "" {
		result.StreamID = args.StreamID
	}
	return result, nil
}

// GetEntriesMCP wraps GetEntriesFromIDs for MCP tool handlers
func (c *Client) GetEntriesMCP(ctx context.Context, args GetEntriesArgs) (GetEntriesResult, error) {
	if len(args.EntryIDs) == 0 {
		return GetEntriesResult{}, apierrors.NewValidationError("entry_ids", "", "at least one entry ID is required")
	}

	resp, err := c.GetEntriesFromIDs(ctx, args.EntryIDs)
	if err != nil {
		return GetEntriesResult{}, err
	}
	return GetEntriesResult{Entries: toEntrySummaries(resp.Body)}, nil
}

// GetFeedMCP wraps GetFeed for MCP tool handlers
func (c *Client) GetFeedMCP(ctx context.Context, args GetFeedArgs) (GetFeedResult, error) {
	resp, err := c.GetFeed(ctx, args.FeedID)
	if err != nil {
		return GetFeedResult{}, err
	}
	return GetFeedResult{Feed: resp.Body}, nil
}

// MarkEntriesMCP wraps MarkArticles for MCP tool handlers.
// Unlike MarkArticles it only accepts the four known entry actions.
func (c *Client) MarkEntriesMCP(ctx context.Context, args MarkEntriesArgs) (MarkEntriesResult, error) {
	action := Action(args.Action)
	if !action.Valid() {
		return MarkEntriesResult{}, apierrors.NewValidationError("action", args.Action,
			"must be one of markAsRead, keepUnread, markAsSaved, markAsUnsaved")
	}
	if len(args.EntryIDs) == 0 {
		return MarkEntriesResult{}, apierrors.NewValidationError("entry_ids", "", "at least one entry ID is required")
	}

	resp, err := c.MarkArticles(ctx, args.EntryIDs, action, MarkerTypeEntries)
	if err != nil {
		return MarkEntriesResult{}, err
	}
	return MarkEntriesResult{
		Action:     args.Action,
		Marked:     len(args.EntryIDs),
		StatusCode: resp.StatusCode,
	}, nil
}

func inCategory(sub Subscription, category string) bool {
	for _, cat := range sub.Categories {
		if strings.EqualFold(cat.Label, category) || cat.ID == category {
			return true
		}
	}
	return false
}

func toSubscriptionSummary(s Subscription) SubscriptionSummary {
	summary := SubscriptionSummary{
		FeedID:  s.ID,
		Title:   s.Title,
		Website: s.Website,
	}
	for _, cat := range s.Categories {
		summary.Categories = append(summary.Categories, cat.Label)
	}
	return summary
}

func toEntrySummaries(entries []Entry) []EntrySummary {
	out := make([]EntrySummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntrySummary(e))
	}
	return out
}

func toEntrySummary(e Entry) EntrySummary {
	summary := EntrySummary{
		ID:     e.ID,
		Title:  e.Title,
		Author: e.Author,
		URL:    e.URL(),
		Unread: e.Unread,
	}
	if e.Published > 0 {
		summary.Published = FromMillis(e.Published).Format(time.RFC3339)
	}
	if e.Origin != nil {
		summary.Source = e.Origin.Title
	}
	if e.Summary != nil {
		summary.Summary = truncate(e.Summary.Content, summaryMaxLen)
	}
	return summary
}

// truncate shortens s to maxLen bytes without splitting a UTF-8 sequence
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
