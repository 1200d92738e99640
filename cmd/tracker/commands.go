package main

import (
	"fmt"
	"io"

	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
	"github.com/riskibarqy/fconline-tracker/internal/usecase"
	"github.com/spf13/cobra"
)

func newBuildPlayerCacheCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "build_player_cache",
		Short: "Map every spid seen in stored matches and backfill placeholder player names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := rt.container.PlayerCache.Build(cmd.Context())
			if err != nil {
				return err
			}
			printPlayerCacheResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newLoadMetadataCmd(rt *session) *cobra.Command {
	var (
		refresh    bool
		syncStatic bool
	)

	cmd := &cobra.Command{
		Use:   "load_metadata",
		Short: "Load all metadata tables into the shared cache and report status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if syncStatic {
				saved, failed := rt.container.SyncStaticFiles(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "static files: saved=%d failed=%d\n", len(saved), len(failed))
			}
			if refresh || syncStatic {
				if err := rt.container.Metadata.Invalidate(ctx, metadata.Tables...); err != nil {
					return fmt.Errorf("invalidate metadata cache: %w", err)
				}
			}

			report := rt.container.WarmMetadata(ctx)
			printWarmupReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "drop cached tables before loading")
	cmd.Flags().BoolVar(&syncStatic, "sync-static", false, "download every table from the remote api into the static directory first")
	return cmd
}

func newReextractShotsCmd(rt *session) *cobra.Command {
	var input usecase.ReextractShotsInput

	cmd := &cobra.Command{
		Use:   "reextract_shots",
		Short: "Rebuild shot details from stored match payloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := rt.container.ShotReextract.Run(cmd.Context(), input)
			if err != nil {
				return err
			}
			printReextractResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Nickname, "nickname", "", "only matches owned by this nickname")
	cmd.Flags().IntVar(&input.MatchType, "match-type", 0, "only matches of this match type")
	cmd.Flags().BoolVar(&input.DryRun, "dry-run", false, "count candidate matches without writing")
	return cmd
}

func newUpdatePlayerNamesCmd(rt *session) *cobra.Command {
	var input usecase.UpdatePlayerNamesInput

	cmd := &cobra.Command{
		Use:   "update_player_names",
		Short: "Replace \"Unknown Player\" names using the spid metadata table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := rt.container.PlayerNames.Update(cmd.Context(), input)
			if err != nil {
				return err
			}
			printPlayerNamesResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().IntVar(&input.Limit, "limit", 0, "process at most this many records (0 = all)")
	return cmd
}

func printPlayerCacheResult(w io.Writer, r usecase.BuildPlayerCacheResult) {
	fmt.Fprintf(w, "player cache built: matches=%d unreadable=%d players=%d\n",
		r.MatchesScanned, r.MatchesFailed, r.PlayersMapped)
	fmt.Fprintf(w, "placeholder names: candidates=%d updated=%d failed=%d\n",
		r.CandidateRecords, r.UpdatedRecords, r.FailedRecords)
}

func printWarmupReport(w io.Writer, report usecase.WarmupReport) {
	for _, item := range report.Tables {
		status := "ok"
		if !item.Loaded {
			status = "unavailable"
		}
		fmt.Fprintf(w, "%-10s %-11s items=%d\n", item.Table, status, item.Items)
	}
	fmt.Fprintf(w, "metadata loaded: %d/%d\n", report.LoadedCount(), len(report.Tables))
}

func printReextractResult(w io.Writer, r usecase.ReextractShotsResult) {
	if r.DryRun {
		fmt.Fprintf(w, "dry run: %d matches would be re-extracted\n", r.Candidates)
		return
	}
	fmt.Fprintf(w, "shots re-extracted: matches=%d succeeded=%d failed=%d shots=%d\n",
		r.Candidates, r.Succeeded, r.Failed, r.Shots)
}

func printPlayerNamesResult(w io.Writer, r usecase.UpdatePlayerNamesResult) {
	fmt.Fprintf(w, "player names: candidates=%d updated=%d unresolved=%d failed=%d\n",
		r.Candidates, r.Updated, r.Unresolved, r.Failed)
}
