package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"fwtranscribe/internal/cache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the transcript cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

type cacheStatsOutput struct {
	Path    string `json:"path"`
	Enabled bool   `json:"enabled"`
	Entries int64  `json:"entries"`
	Hits    int64  `json:"hits"`
	Bytes   int64  `json:"bytes"`
	Oldest  string `json:"oldest,omitempty"`
	Newest  string `json:"newest,omitempty"`
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show transcript cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			output := cacheStatsOutput{Path: cfg.Cache.Path, Enabled: cfg.Cache.Enabled}
			if _, err := os.Stat(cfg.Cache.Path); err == nil {
				store, err := cache.Open(cfg.Cache.Path)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				defer store.Close()
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				output.Entries = stats.Entries
				output.Hits = stats.Hits
				output.Bytes = stats.Bytes
				if !stats.Oldest.IsZero() {
					output.Oldest = stats.Oldest.Format(time.RFC3339)
					output.Newest = stats.Newest.Format(time.RFC3339)
				}
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat cache: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, output)
			}

			rows := [][]string{
				{"Path", output.Path},
				{"Enabled", strconv.FormatBool(output.Enabled)},
				{"Entries", strconv.FormatInt(output.Entries, 10)},
				{"Hits", strconv.FormatInt(output.Hits, 10)},
				{"Size", humanize.Bytes(uint64(max(output.Bytes, 0)))},
			}
			if output.Oldest != "" {
				oldest, _ := time.Parse(time.RFC3339, output.Oldest)
				newest, _ := time.Parse(time.RFC3339, output.Newest)
				rows = append(rows,
					[]string{"Oldest", humanize.Time(oldest)},
					[]string{"Newest", humanize.Time(newest)},
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable("Transcript cache", []string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfg.Cache.Path); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(out, "Cache %s does not exist; nothing to clear\n", cfg.Cache.Path)
				return nil
			}
			store, err := cache.Open(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()
			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %d cached transcript(s) from %s\n", removed, cfg.Cache.Path)
			return nil
		},
	}
}
