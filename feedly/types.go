package feedly

// Action is a markers operation
type Action string

// Marker actions accepted by POST /v3/markers for entries
const (
	ActionMarkAsRead    Action = "markAsRead"
	ActionKeepUnread    Action = "keepUnread"
	ActionMarkAsSaved   Action = "markAsSaved"
	ActionMarkAsUnsaved Action = "markAsUnsaved"
)

// MarkerTypeEntries is the marker type used when none is given
const MarkerTypeEntries = "entries"

// Valid reports whether a is one of the known entry actions
func (a Action) Valid() bool {
	switch a {
	case ActionMarkAsRead, ActionKeepUnread, ActionMarkAsSaved, ActionMarkAsUnsaved:
		return true
	}
	return false
}

// MarkerRequest is the JSON body of POST /v3/markers
type MarkerRequest struct {
	Action   Action   `json:"action"`
	Type     string   `json:"type"`
	EntryIDs []string `json:"entryIds"`
}

// EntryIDs is one page of GET /v3/streams/ids
type EntryIDs struct {
	IDs          []string `json:"ids"`
	Continuation string   `json:"continuation,omitempty"`
}

// StreamContents is one page of GET /v3/streams/contents
type StreamContents struct {
	ID           string  `json:"id"`
	Title        string  `json:"title,omitempty"`
	Direction    string  `json:"direction,omitempty"`
	Updated      int64   `json:"updated,omitempty"`
	Alternate    []Link  `json:"alternate,omitempty"`
	Items        []Entry `json:"items"`
	Continuation string  `json:"continuation,omitempty"`
}

// Category is a user-defined collection of feeds
type Category struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Tag is a user-defined board of saved entries
type Tag struct {
	ID          string `json:"id"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// Subscription is a feed the user follows
type Subscription struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Website     string     `json:"website,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
	Topics      []string   `json:"topics,omitempty"`
	Updated     int64      `json:"updated,omitempty"`
	Added       int64      `json:"added,omitempty"`
	Subscribers int        `json:"subscribers,omitempty"`
	Velocity    float64    `json:"velocity,omitempty"`
	IconURL     string     `json:"iconUrl,omitempty"`
	VisualURL   string     `json:"visualUrl,omitempty"`
}

// Feed is feed metadata from GET /v3/feeds/:feedId
type Feed struct {
	ID          string   `json:"id"`
	FeedID      string   `json:"feedId,omitempty"`
	Title       string   `json:"title"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	State       string   `json:"state,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Subscribers int      `json:"subscribers,omitempty"`
	Velocity    float64  `json:"velocity,omitempty"`
	Updated     int64    `json:"updated,omitempty"`
	IconURL     string   `json:"iconUrl,omitempty"`
}

// Origin identifies the feed an entry came from
type Origin struct {
	StreamID string `json:"streamId"`
	Title    string `json:"title,omitempty"`
	HTMLURL  string `json:"htmlUrl,omitempty"`
}

// Link is an alternate or canonical link of an entry
type Link struct {
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

// Content holds entry HTML with its text direction
type Content struct {
	Content   string `json:"content"`
	Direction string `json:"direction,omitempty"`
}

// Entry is a single article. Timestamps are epoch milliseconds.
type Entry struct {
	ID          string     `json:"id"`
	Title       string     `json:"title,omitempty"`
	Author      string     `json:"author,omitempty"`
	Published   int64      `json:"published,omitempty"`
	Updated     int64      `json:"updated,omitempty"`
	Crawled     int64      `json:"crawled,omitempty"`
	Origin      *Origin    `json:"origin,omitempty"`
	OriginID    string     `json:"originId,omitempty"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	Alternate   []Link     `json:"alternate,omitempty"`
	Canonical   []Link     `json:"canonical,omitempty"`
	Summary     *Content   `json:"summary,omitempty"`
	Content     *Content   `json:"content,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`
	Unread      bool       `json:"unread"`
	Tags        []Tag      `json:"tags,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
	Engagement  int        `json:"engagement,omitempty"`
}

// URL returns the first canonical link, falling back to the first alternate link
func (e Entry) URL() string {
	if len(e.Canonical) > 0 {
		return e.Canonical[0].Href
	}
	if len(e.Alternate) > 0 {
		return e.Alternate[0].Href
	}
	return ""
}
