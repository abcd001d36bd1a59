package chunker

import (
	"strings"
)

const (
	DefaultMaxSize      = 1000
	DefaultOverlapWords = 20
)

type Options struct {
	MaxSize      int // characters per chunk, joined with single spaces
	OverlapWords int // words carried over from the previous chunk
}

func DefaultOptions() Options {
	return Options{
		MaxSize:      DefaultMaxSize,
		OverlapWords: DefaultOverlapWords,
	}
}

// fills zero or negative fields with defaults
func (o Options) withDefaults() Options {
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}

	if o.OverlapWords < 0 {
		o.OverlapWords = 0
	}

	return o
}

// splits content into overlapping, bounded-size segments.
// every segment except a lone over-long word is at most opts.MaxSize characters.
func Split(content string, opts Options) []string {
	segments := splitSegments(content, opts)

	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = strings.Join(s.words, " ")
	}

	return out
}

// segment keeps the words of a chunk and how many of them were carried over
type segment struct {
	words   []string
	overlap int
}

func splitSegments(content string, opts Options) []segment {
	opts = opts.withDefaults()
	words := strings.Fields(content)

	var segments []segment
	var current []string
	currentLen := 0
	carried := 0

	for _, word := range words {
		added := carried < len(current)

		if added && joinedLen(currentLen, len(current), word) > opts.MaxSize {
			segments = append(segments, segment{words: current, overlap: carried})

			seed := tail(current, opts.OverlapWords)
			current = append([]string(nil), seed...)
			currentLen = wordsLen(current)
			carried = len(current)
		}

		// a seed that cannot sit next to this word is trimmed from the front
		for carried > 0 && joinedLen(currentLen, len(current), word) > opts.MaxSize {
			currentLen -= len(current[0])
			current = current[1:]
			carried--
		}

		current = append(current, word)
		currentLen += len(word)
	}

	if carried < len(current) {
		segments = append(segments, segment{words: current, overlap: carried})
	}

	return segments
}

// length of the segment if word were appended, counting single-space separators
func joinedLen(lettersLen, count int, word string) int {
	if count == 0 {
		return len(word)
	}

	return lettersLen + count + len(word)
}

func wordsLen(words []string) int {
	total := 0
	for _, w := range words {
		total += len(w)
	}

	return total
}

func tail(words []string, n int) []string {
	if n <= 0 {
		return nil
	}

	if n >= len(words) {
		return words
	}

	return words[len(words)-n:]
}
