package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/hamza49699/physical-ai-textbook/internal/chunker"
	"github.com/hamza49699/physical-ai-textbook/internal/rag"
	"github.com/hamza49699/physical-ai-textbook/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterFromName(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"module-1-ros2.md", 1},
		{"module-12-capstone.mdx", 12},
		{"intro.md", 0},
		{"introduction-to-physical-ai.md", 0},
		{"tutorial-basics.md", 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chapterFromName(tt.name))
		})
	}
}

func TestTitleFromName(t *testing.T) {
	assert.Equal(t, "Module 1 Ros2", titleFromName("module-1-ros2.md"))
	assert.Equal(t, "Intro", titleFromName("intro.md"))
	assert.Equal(t, "Digital Twin Basics", titleFromName("digital_twin-basics.mdx"))
}

func TestBuildDocuments(t *testing.T) {
	files := []chunker.SourceFile{
		{
			Name: "module-2-simulation.md",
			Sections: []chunker.Section{
				{Title: chunker.IntroductionSection, Content: strings.Repeat("a", 3000), Leading: true},
				{Title: "Gazebo", Content: strings.Repeat("b", 5000)},
			},
		},
		{
			Name:        "intro.md",
			Frontmatter: map[string]any{"title": "Welcome to Physical AI"},
			Sections: []chunker.Section{
				{Title: "Overview", Content: "Physical AI is embodied intelligence."},
			},
		},
	}

	docs := buildDocuments(files)

	require.Len(t, docs, 3)

	assert.Equal(t, "Module 2 Simulation", docs[0].Title)
	assert.Equal(t, 2, docs[0].Chapter)
	assert.Len(t, docs[0].Content, introSectionLimit)

	assert.Equal(t, "Gazebo", docs[1].Section)
	assert.Len(t, docs[1].Content, sectionLimit)

	assert.Equal(t, rag.Document{
		Title:   "Welcome to Physical AI",
		Chapter: 0,
		Section: "Overview",
		Content: "Physical AI is embodied intelligence.",
	}, docs[2])
}

func TestBuildDocumentsHeadedIntroductionKeepsFullLimit(t *testing.T) {
	docs := buildDocuments([]chunker.SourceFile{
		{
			Name: "module-3-isaac.md",
			Sections: []chunker.Section{
				{Title: chunker.IntroductionSection, Content: strings.Repeat("ü", 5000)},
			},
		},
	})

	require.Len(t, docs, 1)
	assert.Equal(t, sectionLimit, utf8.RuneCountInString(docs[0].Content))
}

func TestPrintDocuments(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printDocuments(&buf, nil))
	assert.Contains(t, buf.String(), "No documents ingested yet.")

	buf.Reset()
	err := printDocuments(&buf, []storage.DocumentSummary{
		{ID: 3, Chapter: 1, Section: "Nodes", CreatedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "SECTION")
	assert.Contains(t, buf.String(), "Nodes")
	assert.Contains(t, buf.String(), "2025-03-01 09:30")
}

func TestPrintTotals(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printTotals(&buf, 12, 3))
	assert.Contains(t, buf.String(), "12 chunks indexed, 3 questions answered")
}

func TestRootCmdSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.ElementsMatch(t, []string{"docs", "reset", "documents", "ask"}, names)

	docs, _, err := cmd.Find([]string{"docs"})
	require.NoError(t, err)
	assert.NotNil(t, docs.Flags().Lookup("no-reset"))
	assert.Equal(t, "docs", docs.Flags().Lookup("path").DefValue)
}
