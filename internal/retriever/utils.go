package retriever

import "fmt"

// formats the source label shown to readers
func Citation(chapter int, section string) string {
	return fmt.Sprintf("Chapter %d, Section: %s", chapter, section)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
