package tools

// AllTools contains all tool specifications for the Feedly MCP server.
// Descriptions follow a fixed layout for LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// ACCOUNT TOOLS
	// ==========================================================================
	{
		Name:     "feedly_list_subscriptions",
		Method:   "ListSubscriptions",
		Title:    "List Feedly Subscriptions",
		Category: "account",
		Description: `List the feeds the user follows in Feedly.

USE WHEN: User asks "what feeds do I follow", "list my subscriptions", or needs a feed ID for another tool.

NOT FOR: Reading articles (use feedly_get_stream_contents instead).

PARAMETERS:
- category: Category label or ID to filter by (optional)

RETURNS: Feed IDs, titles, websites and category labels.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "feedly_list_categories",
		Method:   "ListCategories",
		Title:    "List Feedly Categories",
		Category: "account",
		Description: `List the user's Feedly categories, and optionally tags.

USE WHEN: User asks "what folders/categories do I have", or needs a category stream ID.

NOT FOR: Listing feeds (use feedly_list_subscriptions instead).

PARAMETERS:
- include_tags: Also return tags such as saved-for-later boards (optional)

RETURNS: Category IDs and labels, plus tags when requested.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "feedly_get_feed",
		Method:   "GetFeed",
		Title:    "Get Feed Metadata",
		Category: "account",
		Description: `Get metadata for one feed.

USE WHEN: User asks about a feed itself: "how popular is this feed", "what language is it in".

NOT FOR: Reading the feed's articles (use feedly_get_stream_contents instead).

PARAMETERS:
- feed_id: Feed ID such as feed/http://example.com/rss (required)

RETURNS: Title, website, description, subscriber count, velocity and topics.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// STREAM TOOLS
	// ==========================================================================
	{
		Name:     "feedly_get_entry_ids",
		Method:   "GetEntryIDs",
		Title:    "Get Stream Entry IDs",
		Category: "streams",
		Description: `Get entry IDs from a feed, category or tag stream, one page at a time.

USE WHEN: User wants to count or bulk-process entries, e.g. "mark everything in Tech as read".

NOT FOR: Reading titles or summaries (use feedly_get_stream_contents instead).

PARAMETERS:
- stream_id: Stream ID (required)
- count: Page size (default 1000)
- continuation: Token from the previous page (optional)
- unread_only: Only unread entries (optional)
- newer_than: Epoch milliseconds lower bound (optional)
- ranked: newest or oldest (optional)

RETURNS: Entry IDs and a continuation token when more pages exist.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "feedly_get_stream_contents",
		Method:   "GetStreamContents",
		Title:    "Read Stream Contents",
		Category: "streams",
		Description: `Read articles from a feed, category or tag stream.

USE WHEN: User asks "what's new in X", "show my unread articles", "latest posts from this feed".

NOT FOR: Fetching known entry IDs (use feedly_get_entries instead).

PARAMETERS:
- stream_id: Stream ID (required)
- count: Page size (default 20)
- continuation: Token from the previous page (optional)
- unread_only: Only unread entries (optional)
- newer_than: Epoch milliseconds lower bound (optional)
- ranked: newest or oldest (optional)

RETURNS: Entry summaries (title, author, URL, published time, source, summary) and a continuation token.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// ENTRY TOOLS
	// ==========================================================================
	{
		Name:     "feedly_get_entries",
		Method:   "GetEntries",
		Title:    "Get Entries by ID",
		Category: "entries",
		Description: `Fetch entries by their IDs.

USE WHEN: You already have entry IDs (from feedly_get_entry_ids) and need their content.

NOT FOR: Browsing a stream (use feedly_get_stream_contents instead).

PARAMETERS:
- entry_ids: Entry IDs (required)

RETURNS: Entry summaries in the order Feedly returns them.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// MARKER TOOLS
	// ==========================================================================
	{
		Name:     "feedly_mark_entries",
		Method:   "MarkEntries",
		Title:    "Mark Entries",
		Category: "markers",
		Description: `Mark entries as read or unread, or save and unsave them.

USE WHEN: User says "mark these as read", "keep this unread", "save this for later", "unsave".

NOT FOR: Reading entries.

PARAMETERS:
- entry_ids: Entry IDs (required)
- action: markAsRead, keepUnread, markAsSaved or markAsUnsaved (required)

RETURNS: The action, how many entries were sent and the HTTP status.`,
		ReadOnly:   false,
		Idempotent: true,
		OpenWorld:  true,
	},
}
