package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

// NewEventsCommand constructs the `events` command group and subcommands.
func NewEventsCommand(baseURL BaseURLFunc) *cobra.Command {
	eventsCmd := &cobra.Command{Use: "events", Short: "Event sync operations"}

	eventsCmd.AddCommand(
		newEventsPollCommand(baseURL),
		newEventsTokenCommand(baseURL),
		newEventsRecordCommand(baseURL),
		newEventsArchiveCommand(baseURL),
	)

	return eventsCmd
}

// newEventsPollCommand constructs the `events poll` subcommand.
func newEventsPollCommand(baseURL BaseURLFunc) *cobra.Command {
	pollCmd := &cobra.Command{
		Use:   "poll",
		Short: "Poll events for a resource since a sync token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resource, _ := cmd.Flags().GetString("resource")
			sync, _ := cmd.Flags().GetString("sync")
			optFields, _ := cmd.Flags().GetString("opt-fields")

			q := url.Values{}
			q.Set("resource", resource)
			if sync != "" {
				q.Set("sync", sync)
			}
			if optFields != "" {
				q.Set("opt_fields", optFields)
			}
			return getJSON(cmd, baseURL()+"/v1/events?"+q.Encode())
		},
	}
	pollCmd.Flags().StringP("resource", "r", "", "Resource gid")
	pollCmd.Flags().String("sync", "", "Sync token from a previous poll (empty = baseline)")
	pollCmd.Flags().String("opt-fields", "", "Comma-separated sparse fieldset")
	_ = pollCmd.MarkFlagRequired("resource")
	return pollCmd
}

// newEventsTokenCommand constructs the `events token` subcommand.
func newEventsTokenCommand(baseURL BaseURLFunc) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Fetch a resource's current sync token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resource, _ := cmd.Flags().GetString("resource")
			q := url.Values{}
			q.Set("resource", resource)
			return getJSON(cmd, baseURL()+"/v1/events/token?"+q.Encode())
		},
	}
	tokenCmd.Flags().StringP("resource", "r", "", "Resource gid")
	_ = tokenCmd.MarkFlagRequired("resource")
	return tokenCmd
}

// newEventsRecordCommand constructs the `events record` subcommand.
func newEventsRecordCommand(baseURL BaseURLFunc) *cobra.Command {
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record a change event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resource, _ := cmd.Flags().GetString("resource")
			resourceType, _ := cmd.Flags().GetString("type")
			action, _ := cmd.Flags().GetString("action")
			user, _ := cmd.Flags().GetString("user")
			changeJSON, _ := cmd.Flags().GetString("change")

			body := map[string]any{
				"resource":      resource,
				"resource_type": resourceType,
				"action":        action,
			}
			if user != "" {
				body["user"] = user
			}
			if changeJSON != "" {
				var change map[string]any
				if err := json.Unmarshal([]byte(changeJSON), &change); err != nil {
					return fmt.Errorf("invalid --change: %w", err)
				}
				body["change"] = change
			}
			b, _ := json.Marshal(body)
			resp, err := http.Post(baseURL()+"/v1/events", "application/json", bytes.NewReader(b))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			return printBody(cmd, resp)
		},
	}
	recordCmd.Flags().StringP("resource", "r", "", "Resource gid")
	recordCmd.Flags().String("type", "task", "Resource type")
	recordCmd.Flags().String("action", "changed", "Action: added|changed|deleted|removed|undeleted")
	recordCmd.Flags().String("user", "", "Acting user gid")
	recordCmd.Flags().String("change", "", "Change payload as JSON")
	_ = recordCmd.MarkFlagRequired("resource")
	return recordCmd
}

// newEventsArchiveCommand constructs the `events archive` subcommand.
func newEventsArchiveCommand(baseURL BaseURLFunc) *cobra.Command {
	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Page through archived (evicted) events for a resource",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resource, _ := cmd.Flags().GetString("resource")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetString("offset")

			q := url.Values{}
			q.Set("resource", resource)
			if limit > 0 {
				q.Set("limit", fmt.Sprintf("%d", limit))
			}
			if offset != "" {
				q.Set("offset", offset)
			}
			return getJSON(cmd, baseURL()+"/v1/archive/events?"+q.Encode())
		},
	}
	archiveCmd.Flags().StringP("resource", "r", "", "Resource gid")
	archiveCmd.Flags().Int("limit", 0, "Page size (server clamps)")
	archiveCmd.Flags().String("offset", "", "Offset cursor from next_page")
	_ = archiveCmd.MarkFlagRequired("resource")
	return archiveCmd
}

func getJSON(cmd *cobra.Command, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printBody(cmd, resp)
}

// printBody pretty-prints a JSON response, or echoes it raw when it does not
// decode.
func printBody(cmd *cobra.Command, resp *http.Response) error {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var v any
	if json.Unmarshal(b, &v) == nil {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
