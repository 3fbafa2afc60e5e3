package client

import (
	"github.com/spf13/cobra"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// NewRoot constructs a root Cobra command for the syncline client.
// It registers the events command group.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "syncline",
		Short: "Syncline client commands",
	}
	root.AddCommand(NewEventsCommand(baseURL))
	return root
}
