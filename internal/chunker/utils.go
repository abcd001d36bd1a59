package chunker

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hamza49699/physical-ai-textbook/internal/logger"
	"gopkg.in/yaml.v3"
)

const IntroductionSection = "Introduction"

var (
	frontmatterRegex = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n?`)
	headerRegex      = regexp.MustCompile(`^#{2,3}\s+(.+?)\s*#*\s*$`)
)

// a headed block of a markdown file
type Section struct {
	Title   string
	Content string
	Leading bool // text before the first header
}

// a markdown file split into sections
type SourceFile struct {
	Path        string
	Name        string
	Frontmatter map[string]any
	Sections    []Section
}

// separates yaml frontmatter from the body. malformed frontmatter is
// returned as an error alongside the body with the block stripped.
func ParseFrontmatter(content string) (map[string]any, string, error) {
	metadata := make(map[string]any)

	matches := frontmatterRegex.FindStringSubmatch(content)
	if len(matches) < 2 {
		return metadata, content, nil
	}

	body := content[len(matches[0]):]

	if err := yaml.Unmarshal([]byte(matches[1]), &metadata); err != nil {
		return map[string]any{}, body, fmt.Errorf("invalid frontmatter: %w", err)
	}

	return metadata, body, nil
}

// splits markdown on level 2 and 3 headers. text before the first header
// becomes an "Introduction" section; sections with an empty body are dropped.
func SplitSections(body string) []Section {
	lines := strings.Split(body, "\n")

	var sections []Section
	current := Section{Title: IntroductionSection, Leading: true}
	var buf strings.Builder

	flush := func() {
		current.Content = strings.TrimSpace(buf.String())
		if current.Content != "" {
			sections = append(sections, current)
		}
		buf.Reset()
	}

	inFence := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}

		if !inFence {
			if matches := headerRegex.FindStringSubmatch(line); len(matches) == 2 {
				flush()
				current = Section{Title: strings.TrimSpace(matches[1])}
				continue
			}
		}

		buf.WriteString(line)
		buf.WriteString("\n")
	}

	flush()

	return sections
}

// truncates s to at most limit characters (runes)
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}

	return s
}

// walks dir for markdown files and splits each into sections.
// returns the parsed files and one error per file that failed.
func LoadMarkdownDir(dir string) ([]SourceFile, []error) {
	var files []SourceFile
	var errs []error

	walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("error accessing path", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("path %s: %w", path, err))
			return nil
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".mdx" {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("failed to read file", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			return nil
		}

		metadata, body, err := ParseFrontmatter(string(raw))
		if err != nil {
			logger.Warn("failed to parse frontmatter", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("frontmatter %s: %w", path, err))
		}

		files = append(files, SourceFile{
			Path:        path,
			Name:        filepath.Base(path),
			Frontmatter: metadata,
			Sections:    SplitSections(body),
		})

		return nil
	})

	if walkErr != nil {
		errs = append(errs, fmt.Errorf("walk error: %w", walkErr))
	}

	logger.Info("processed markdown files",
		"file_count", len(files),
		"errors", len(errs),
	)

	return files, errs
}
