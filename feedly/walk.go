package feedly

import (
	"context"
	"errors"
	"fmt"
)

// ErrStopWalk can be returned from a walk callback to stop without error
var ErrStopWalk = errors.New("feedly: stop walk")

// WalkEntryIDs calls fn for every page of entry IDs, following continuation
// tokens until Feedly returns none.
func (c *Client) WalkEntryIDs(ctx context.Context, q StreamQuery, fn func(EntryIDs) error) error {
	return walk(ctx, q, c.GetEntryIDs, func(p EntryIDs) string { return p.Continuation }, fn)
}

// WalkFeedContent calls fn for every page of stream contents, following
// continuation tokens until Feedly returns none.
func (c *Client) WalkFeedContent(ctx context.Context, q StreamQuery, fn func(StreamContents) error) error {
	return walk(ctx, q, c.GetFeedContent, func(p StreamContents) string { return p.Continuation }, fn)
}

func walk[T any](
	ctx context.Context,
	q StreamQuery,
	fetch func(context.Context, StreamQuery) (*Response[T], error),
	next func(T) string,
	fn func(T) error,
) error {
	seen := make(map[string]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := fetch(ctx, q)
		if err != nil {
			return err
		}

		if err := fn(resp.Body); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}

		token := next(resp.Body)
		if token == "" {
			return nil
		}
		if _, dup := seen[token]; dup {
			return fmt.Errorf("feedly: continuation %q returned twice for stream %q", token, q.StreamID)
		}
		seen[token] = struct{}{}
		q.Continuation = token
	}
}
