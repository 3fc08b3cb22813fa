package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/olgasafonova/feedly-go/feedly"
	"github.com/olgasafonova/feedly-go/metrics"
	"github.com/olgasafonova/feedly-go/tracing"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *feedly.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *feedly.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	registered := 0
	for _, spec := range AllTools {
		if h.registerByName(server, spec) {
			registered++
		}
	}
	h.logger.Info("Registered all tools", "count", registered)
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) bool {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "ListSubscriptions":
		register(h, server, tool, spec, h.client.ListSubscriptionsMCP)
	case "ListCategories":
		register(h, server, tool, spec, h.client.ListCategoriesMCP)
	case "GetFeed":
		register(h, server, tool, spec, h.client.GetFeedMCP)
	case "GetEntryIDs":
		register(h, server, tool, spec, h.client.GetEntryIDsMCP)
	case "GetStreamContents":
		register(h, server, tool, spec, h.client.GetStreamContentsMCP)
	case "GetEntries":
		register(h, server, tool, spec, h.client.GetEntriesMCP)
	case "MarkEntries":
		register(h, server, tool, spec, h.client.MarkEntriesMCP)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
		return false
	}
	return true
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	} else if !spec.ReadOnly {
		// the MCP default for non-read-only tools is destructive
		annotations.DestructiveHint = ptr(false)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, wrap(h, spec, method))
}

// wrap builds the typed MCP handler for method.
func wrap[Args, Result any](
	h *HandlerRegistry,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) mcp.ToolHandlerFor[Args, Result] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args Args) (_ *mcp.CallToolResult, result Result, err error) {
		defer h.recoverPanic(spec.Name, &err)

		// Start trace span
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category)
		span.SetAttributes(attribute.Bool("mcp.tool.readonly", spec.ReadOnly))

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err = method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			tracing.RecordError(span, err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			h.logger.Warn("Tool failed", "tool", spec.Name, "error", err)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	}
}

// recoverPanic recovers from panics in tool handlers and turns them into a tool error.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		metrics.RecordRequest(toolName, 0, false)
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case feedly.ListSubscriptionsArgs:
		if a.Category != "" {
			attrs = append(attrs, "category_filter", a.Category)
		}
	case feedly.StreamArgs:
		attrs = append(attrs, "stream_id", a.StreamID, "count", a.Count, "unread_only", a.UnreadOnly)
	case feedly.GetEntriesArgs:
		attrs = append(attrs, "requested", len(a.EntryIDs))
	case feedly.GetFeedArgs:
		attrs = append(attrs, "feed_id", a.FeedID)
	case feedly.MarkEntriesArgs:
		attrs = append(attrs, "action", a.Action)
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case feedly.ListSubscriptionsResult:
		attrs = append(attrs, "subscriptions", r.Total)
	case feedly.ListCategoriesResult:
		attrs = append(attrs, "categories", len(r.Categories), "tags", len(r.Tags))
	case feedly.GetEntryIDsResult:
		attrs = append(attrs, "ids", len(r.IDs), "has_more", r.Continuation != "")
	case feedly.GetStreamContentsResult:
		attrs = append(attrs, "entries", len(r.Entries), "has_more", r.Continuation != "")
	case feedly.GetEntriesResult:
		attrs = append(attrs, "entries", len(r.Entries))
	case feedly.MarkEntriesResult:
		attrs = append(attrs, "marked", r.Marked, "status", r.StatusCode)
	}

	h.logger.Info("Tool executed", attrs...)
}
