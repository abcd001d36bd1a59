package embedder

import (
	"crypto/md5" //nolint:gosec // used for bucket hashing, not security
	"math"
	"strings"
	"unicode"
)

const (
	// fixed vector width shared by the index, the store and every query
	Dimension = 384

	// reported by the health endpoint
	Name = "simple-bow-md5-384"
)

// deterministic hashed bag-of-words encoder. it has no state, so one
// instance is safe to share between goroutines.
type HashEmbedder struct{}

func New() *HashEmbedder {
	return &HashEmbedder{}
}

func (e *HashEmbedder) Name() string {
	return Name
}

func (e *HashEmbedder) Dimension() int {
	return Dimension
}

// encodes text into a unit-length vector. text without tokens maps to the
// zero vector, which never matches anything under cosine similarity.
func (e *HashEmbedder) Encode(text string) []float32 {
	vector := make([]float32, Dimension)

	for _, token := range Tokenize(text) {
		vector[bucket(token)]++
	}

	normalize(vector)

	return vector
}

// encodes each text in order
func (e *HashEmbedder) EncodeAll(texts []string) [][]float32 {
	vectors := make([][]float32, len(texts))

	for i, text := range texts {
		vectors[i] = e.Encode(text)
	}

	return vectors
}

// lower-cases text, replaces anything that is not a letter, number or
// whitespace with a space, and splits on whitespace
func Tokenize(text string) []string {
	var builder strings.Builder
	builder.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}

	return strings.Fields(builder.String())
}

// reports whether v has zero magnitude
func IsZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}

	return true
}

// md5 digest read as a big-endian integer, reduced mod Dimension
func bucket(token string) int {
	sum := md5.Sum([]byte(token)) //nolint:gosec // see import

	remainder := 0
	for _, b := range sum {
		remainder = (remainder*256 + int(b)) % Dimension
	}

	return remainder
}

func normalize(v []float32) {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}

	if sumSquares == 0 {
		return
	}

	norm := float32(math.Sqrt(sumSquares))
	for i := range v {
		v[i] /= norm
	}
}
