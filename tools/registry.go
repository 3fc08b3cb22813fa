// Package tools provides a metadata-driven registry for MCP tool definitions.
// Tools are declared in AllTools and bound to feedly.Client methods by name.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each ToolSpec maps to a feedly.Client MCP method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "feedly_get_entry_ids")
	Name string

	// Method is the client method name without the MCP suffix (e.g., "GetEntryIDs")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (account, streams, entries, markers)
	Category string

	// ReadOnly indicates the tool doesn't modify Feedly state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ToolsByCategory returns the tools in AllTools with the given category.
func ToolsByCategory(category string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			out = append(out, spec)
		}
	}
	return out
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
