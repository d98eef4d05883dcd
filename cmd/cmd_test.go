package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reelhub/internal/media"
)

func TestFlattenSectionsLabelsEachSection(t *testing.T) {
	s := media.Sections{
		Trending:    []media.Item{{ID: "1", Title: "One"}},
		Latest:      []media.Item{},
		Recommended: []media.Item{{ID: "2"}},
	}

	items, labels := flattenSections(s)
	assert.Equal(t, []media.Item{{ID: "1", Title: "One"}, {ID: "2"}}, items)
	assert.Equal(t, []string{"[Trending] One", "[Recommended] 2"}, labels)
}

func TestSectionItems(t *testing.T) {
	s := media.Sections{
		Trending:    []media.Item{{ID: "t"}},
		Latest:      []media.Item{{ID: "l"}},
		Recommended: []media.Item{{ID: "r"}},
	}
	assert.Equal(t, "t", sectionItems(s, "trending")[0].ID)
	assert.Equal(t, "l", sectionItems(s, "Latest")[0].ID)
	assert.Equal(t, "r", sectionItems(s, "recommended")[0].ID)
}

func TestEpisodeName(t *testing.T) {
	assert.Equal(t, "Chapter 9", episodeName(media.Episode{ID: "c9", Name: "Chapter 9"}, 0))
	assert.Equal(t, "Episode 3", episodeName(media.Episode{ID: "x"}, 2))
}

func TestItemTitlesFallBackToID(t *testing.T) {
	got := itemTitles([]media.Item{{ID: "a", Title: "Alpha"}, {ID: "b"}})
	assert.Equal(t, []string{"Alpha", "b"}, got)
}
