package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"reelhub/internal/download"
	"reelhub/internal/httputil"
	"reelhub/internal/logging"
	"reelhub/internal/media"
	"reelhub/internal/player"
	"reelhub/internal/ui"
)

// searchRun is the default command: reelhub <query>
func searchRun(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	code, err := a.platform(cmd)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	if query == "" {
		// Prompt for query via fzf
		query, err = ui.Input("Search " + code)
		if err != nil {
			return fmt.Errorf("no search query provided")
		}
	}

	debugf("searching %s for: %s", code, query)

	var results []media.Item
	_ = ui.WithSpinner("Searching "+code, func() error {
		results = a.svc.Search(cmd.Context(), code, query)
		return nil
	})

	if flagJSON {
		return printJSON(results)
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "No results for %q on %s.\n", query, code)
		return nil
	}

	idx, err := ui.Select("Select", itemTitles(results))
	if err != nil {
		return err
	}
	return a.watch(cmd.Context(), code, results[idx])
}

// itemTitles renders items for a picker.
func itemTitles(items []media.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = displayTitle(it)
	}
	return out
}

func displayTitle(it media.Item) string {
	if it.Title == "" {
		return it.ID
	}
	return it.Title
}

// watch handles the episode selection and then plays, downloads or prints
// the resolved reference.
func (a *app) watch(ctx context.Context, code string, item media.Item) error {
	debugf("selected: %s (ID: %s)", item.Title, item.ID)

	// Detail refreshes title and cover; a miss is not fatal since the
	// episode list may still resolve.
	var (
		detail media.Detail
		found  bool
	)
	_ = ui.WithSpinner("Loading details", func() error {
		detail, found = a.svc.Detail(ctx, code, item.ID)
		return nil
	})
	if found {
		if detail.Title != "" {
			item.Title = detail.Title
		}
		if detail.Cover != "" {
			item.Cover = detail.Cover
		}
	} else {
		debugf("no detail for %s on %s", item.ID, code)
	}

	var episodes []media.Episode
	_ = ui.WithSpinner("Loading episodes", func() error {
		episodes = a.svc.Episodes(ctx, code, item.ID)
		return nil
	})
	if len(episodes) == 0 {
		return fmt.Errorf("no episodes found for %q on %s", displayTitle(item), code)
	}

	names := make([]string, len(episodes))
	for i, ep := range episodes {
		names[i] = episodeName(ep, i)
	}
	epIdx, err := ui.Select("Episode", names)
	if err != nil {
		return err
	}
	episode := episodes[epIdx]
	debugf("episode: %s (ID: %s)", episode.Name, episode.ID)

	var ref media.VideoRef
	_ = ui.WithSpinner("Resolving video", func() error {
		ref = a.svc.EpisodeVideo(ctx, code, episode)
		return nil
	})
	if ref.Empty() {
		return fmt.Errorf("no playable source for %s", names[epIdx])
	}
	if ref.URL != "" {
		if err := httputil.ValidateURL(ref.URL); err != nil {
			return fmt.Errorf("no playable source for %s: %w", names[epIdx], err)
		}
	}
	debugf("video: %s (%d images)", ref.URL, len(ref.Images))

	title := fmt.Sprintf("%s - %s", displayTitle(item), names[epIdx])

	// JSON output mode
	if flagJSON {
		return printJSON(map[string]interface{}{
			"platform": code,
			"id":       item.ID,
			"title":    title,
			"episode":  episode,
			"video":    ref,
		})
	}

	if flagDownload != "" {
		dir := flagDownload
		if dir == defaultDownloadDir {
			dir, err = cfg.ExpandDownloadDir()
			if err != nil {
				return fmt.Errorf("resolving download dir: %w", err)
			}
		}
		outputPath, err := download.New(a.client, dir).Download(ctx, ref, title)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
	} else {
		p := player.New(cfg.Player)
		if !p.Available() {
			return fmt.Errorf("player %q not found in PATH", p.Name())
		}
		if err := p.Play(ref, title); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
	}

	entry := media.HistoryEntry{
		Platform:    code,
		ID:          item.ID,
		Title:       item.Title,
		Cover:       item.Cover,
		LastEpisode: episode.ID,
	}
	if err := a.tracker.Add(ctx, entry); err != nil {
		logging.Warn("saving history failed", "err", err)
	}
	return nil
}

func episodeName(ep media.Episode, i int) string {
	if ep.Name != "" {
		return ep.Name
	}
	return fmt.Sprintf("Episode %d", i+1)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
