package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/douhashi/kensaku/internal/api"
	"github.com/douhashi/kensaku/internal/github"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		sort     string
		order    string
		asJSON   bool
		maxItems int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "リポジトリを検索",
		Long:  `GitHubのリポジトリ検索APIに問い合わせ、マッチしたリポジトリを表示します。`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := api.NewClient(
				api.WithBaseURL(appConfig.GitHub.BaseURL),
				api.WithToken(appConfig.GitHub.Token),
				api.WithLogger(appLog),
			)
			if err != nil {
				return fmt.Errorf("failed to create API client: %w", err)
			}

			endpoint := github.SearchRepositoriesWithOptions(github.SearchOptions{
				Query: args[0],
				Sort:  sort,
				Order: order,
			})

			result, err := api.Do(cmd.Context(), client, endpoint)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if asJSON {
				return renderJSON(cmd, result)
			}
			renderText(cmd, result, maxItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "", "ソートキー (stars, forks, updated)")
	cmd.Flags().StringVar(&order, "order", "", "ソート順 (asc, desc)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON形式で出力")
	cmd.Flags().IntVar(&maxItems, "limit", 10, "表示する最大件数")

	return cmd
}

func renderText(cmd *cobra.Command, result *github.SearchResult[github.Repository], maxItems int) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d 件ヒットしました\n", result.TotalCount)
	if result.IncompleteResults {
		fmt.Fprintln(out, "(検索がタイムアウトしたため結果は不完全です)")
	}

	for i, repo := range result.Items {
		if i >= maxItems {
			break
		}
		lang := "-"
		if repo.Language != nil {
			lang = *repo.Language
		}
		desc := ""
		if repo.Description != nil {
			desc = *repo.Description
		}
		fmt.Fprintf(out, "%-40s ★%-7d %-12s %s\n", repo.FullName, repo.StargazersCount, lang, desc)
	}
}

func renderJSON(cmd *cobra.Command, result *github.SearchResult[github.Repository]) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
