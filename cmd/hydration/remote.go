package main

import (
	"fmt"
	"strconv"
	"time"

	"hydration-tracker/internal/client"

	"github.com/spf13/cobra"
)

// remoteCmd works against the record API only; it never touches the local ledger.
func remoteCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Append to or list the remote water record API",
	}
	cmd.PersistentFlags().StringVar(&url, "url", "", "record API base URL (default from config)")

	newClient := func() *client.WaterClient {
		if url == "" {
			url = cfg.Remote.URL
		}
		return client.NewWaterClient(url)
	}

	var at string
	add := &cobra.Command{
		Use:   "add [ml]",
		Short: "Append one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("capacity must be a number: %w", err)
			}
			var ts *time.Time
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("parse --at: %w", err)
				}
				ts = &t
			}

			rec, err := newClient().Append(cmd.Context(), capacity, ts)
			if err != nil {
				return err
			}
			fmt.Printf("%s  %gml  %s\n", rec.ID, rec.Capacity, rec.Timestamp.Local().Format(time.DateTime))
			return nil
		},
	}
	add.Flags().StringVar(&at, "at", "", "record timestamp (RFC3339); server time if empty")

	list := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := newClient().List(cmd.Context())
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No records yet.")
				return nil
			}
			for _, r := range recs {
				fmt.Printf("%s  %gml  %s\n", r.ID, r.Capacity, r.Timestamp.Local().Format(time.DateTime))
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
