package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"reelhub/internal/media"
	"reelhub/internal/ui"
)

var homeCmd = &cobra.Command{
	Use:       "home [trending|latest|recommended]",
	Short:     "Browse a platform's home sections",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"trending", "latest", "recommended"},
	RunE:      homeRun,
}

func homeRun(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	code, err := a.platform(cmd)
	if err != nil {
		return err
	}

	var sections media.Sections
	_ = ui.WithSpinner("Loading "+code, func() error {
		sections = a.svc.Home(cmd.Context(), code)
		return nil
	})

	if flagJSON {
		if len(args) == 1 {
			return printJSON(sectionItems(sections, args[0]))
		}
		return printJSON(sections)
	}

	var (
		items  []media.Item
		labels []string
	)
	if len(args) == 1 {
		items = sectionItems(sections, args[0])
		labels = itemTitles(items)
	} else {
		items, labels = flattenSections(sections)
	}

	if len(items) == 0 {
		fmt.Fprintf(os.Stderr, "Nothing on %s right now.\n", code)
		return nil
	}

	idx, err := ui.Select("Home", labels)
	if err != nil {
		return err
	}
	return a.watch(cmd.Context(), code, items[idx])
}

func sectionItems(s media.Sections, name string) []media.Item {
	switch strings.ToLower(name) {
	case "latest":
		return s.Latest
	case "recommended":
		return s.Recommended
	default:
		return s.Trending
	}
}

// flattenSections lists every section's items in order, labelling each
// with its section.
func flattenSections(s media.Sections) ([]media.Item, []string) {
	var (
		items  []media.Item
		labels []string
	)
	for _, sec := range []struct {
		name  string
		items []media.Item
	}{
		{"Trending", s.Trending},
		{"Latest", s.Latest},
		{"Recommended", s.Recommended},
	} {
		for _, it := range sec.items {
			items = append(items, it)
			labels = append(labels, fmt.Sprintf("[%s] %s", sec.name, displayTitle(it)))
		}
	}
	return items, labels
}
