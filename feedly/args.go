package feedly

// ListSubscriptionsArgs contains parameters for listing subscriptions
type ListSubscriptionsArgs struct {
	Category string `json:"category,omitempty" jsonschema:"Only return feeds in this category label or ID"`
}

// ListSubscriptionsResult is the result of listing subscriptions
type ListSubscriptionsResult struct {
	Subscriptions []SubscriptionSummary `json:"subscriptions"`
	Total         int                   `json:"total"`
}

// SubscriptionSummary is a compact subscription for tool output
type SubscriptionSummary struct {
	FeedID     string   `json:"feed_id"`
	Title      string   `json:"title"`
	Website    string   `json:"website,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// ListCategoriesArgs contains parameters for listing categories and tags
type ListCategoriesArgs struct {
	IncludeTags bool `json:"include_tags,omitempty" jsonschema:"Also list tags (boards of saved entries)"`
}

// ListCategoriesResult is the result of listing categories and tags
type ListCategoriesResult struct {
	Categories []Category `json:"categories"`
	Tags       []Tag      `json:"tags,omitempty"`
}

// StreamArgs selects a page of a stream
type StreamArgs struct {
	StreamID     string `json:"stream_id" jsonschema:"Stream ID, e.g. feed/http://example.com/rss or user/<id>/category/global.all"`
	Count        int    `json:"count,omitempty" jsonschema:"Page size. Defaults to 1000 for IDs and 20 for contents"`
	Continuation string `json:"continuation,omitempty" jsonschema:"Continuation token from a previous page"`
	UnreadOnly   bool   `json:"unread_only,omitempty" jsonschema:"Only return unread entries"`
	NewerThan    *int64 `json:"newer_than,omitempty" jsonschema:"Only entries newer than this epoch time in milliseconds"`
	Ranked       string `json:"ranked,omitempty" jsonschema:"Sort order: newest or oldest"`
}

func (a StreamArgs) query(defaultCount int) StreamQuery {
	count := a.Count
	if count == 0 {
		count = defaultCount
	}
	return StreamQuery{
		StreamID:     a.StreamID,
		NewerThan:    a.NewerThan,
		Continuation: a.Continuation,
		Count:        PageSize(count),
		UnreadOnly:   a.UnreadOnly,
		Ranked:       a.Ranked,
	}
}

// GetEntryIDsResult is the result of fetching entry IDs
type GetEntryIDsResult struct {
	IDs          []string `json:"ids"`
	Continuation string   `json:"continuation,omitempty"`
}

// GetStreamContentsResult is the result of fetching stream contents
type GetStreamContentsResult struct {
	StreamID     string         `json:"stream_id"`
	Title        string         `json:"title,omitempty"`
	Entries      []EntrySummary `json:"entries"`
	Continuation string         `json:"continuation,omitempty"`
}

// EntrySummary is a compact entry for tool output
type EntrySummary struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	URL       string `json:"url,omitempty"`
	Published string `json:"published,omitempty"`
	Source    string `json:"source,omitempty"`
	Unread    bool   `json:"unread"`
	Summary   string `json:"summary,omitempty"`
}

// GetEntriesArgs contains parameters for fetching entries by ID
type GetEntriesArgs struct {
	EntryIDs []string `json:"entry_ids" jsonschema:"Entry IDs to fetch"`
}

// GetEntriesResult is the result of fetching entries by ID
type GetEntriesResult struct {
	Entries []EntrySummary `json:"entries"`
}

// GetFeedArgs contains parameters for fetching feed metadata
type GetFeedArgs struct {
	FeedID string `json:"feed_id" jsonschema:"Feed ID, e.g. feed/http://example.com/rss"`
}

// GetFeedResult is the result of fetching feed metadata
type GetFeedResult struct {
	Feed Feed `json:"feed"`
}

// MarkEntriesArgs contains parameters for marking entries
type MarkEntriesArgs struct {
	EntryIDs []string `json:"entry_ids" jsonschema:"Entry IDs to mark"`
	Action   string   `json:"action" jsonschema:"One of markAsRead, keepUnread, markAsSaved, markAsUnsaved"`
}

// MarkEntriesResult is the result of marking entries
type MarkEntriesResult struct {
	Action     string `json:"action"`
	Marked     int    `json:"marked"`
	StatusCode int    `json:"status_code"`
}
