package embedder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	return math.Sqrt(sum)
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}

	return sum
}

func TestEncodeIsDeterministic(t *testing.T) {
	e := New()

	texts := []string{
		"What is ROS2?",
		"Digital twins mirror a physical robot in simulation.",
		"Isaac Sim, Gazebo & Unity!",
	}

	for _, text := range texts {
		first := e.Encode(text)
		second := e.Encode(text)

		assert.Equal(t, first, second, "encode must be deterministic for %q", text)
		assert.Len(t, first, Dimension)
		assert.InDelta(t, 1.0, norm(first), 1e-5, "vector should be unit length for %q", text)
	}
}

func TestEncodeEmptyInputIsZeroVector(t *testing.T) {
	e := New()

	for _, text := range []string{"", "   ", "?!... ---", "\n\t"} {
		v := e.Encode(text)

		require.Len(t, v, Dimension)
		assert.True(t, IsZero(v), "expected zero vector for %q", text)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"punctuation becomes space", "What is ROS2?", []string{"what", "is", "ros2"}},
		{"hyphen splits words", "sim-to-real", []string{"sim", "to", "real"}},
		{"keeps numeric symbols", "What is ROS2? ½ x²", []string{"what", "is", "ros2", "½", "x²"}},
		{"superscript units", "9.8 m/s²", []string{"9", "8", "m", "s²"}},
		{"collapses whitespace", "  a \t b\n\nc ", []string{"a", "b", "c"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tt.expected) == 0 {
				assert.Empty(t, tokens)
				return
			}

			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestSimilarityGrowsWithSharedTokens(t *testing.T) {
	e := New()

	query := e.Encode("ros2 nodes topics services")
	none := e.Encode("banana bread recipe")
	some := e.Encode("ros2 nodes")
	most := e.Encode("ros2 nodes topics")
	same := e.Encode("services topics nodes ros2")

	assert.Less(t, dot(query, none), dot(query, some))
	assert.Less(t, dot(query, some), dot(query, most))
	assert.InDelta(t, 1.0, dot(query, same), 1e-5, "word order must not matter")
}

func TestCaseAndPunctuationInsensitive(t *testing.T) {
	e := New()

	assert.Equal(t, e.Encode("ROS 2, Overview!"), e.Encode("ros 2 overview"))
}

func TestBucketInRange(t *testing.T) {
	for _, token := range []string{"a", "ros2", "humanoid", "12345", "ñandú"} {
		b := bucket(token)
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, Dimension)
	}
}

func TestEncodeAll(t *testing.T) {
	e := New()

	vectors := e.EncodeAll([]string{"one", "two"})

	require.Len(t, vectors, 2)
	assert.Equal(t, e.Encode("one"), vectors[0])
	assert.Equal(t, e.Encode("two"), vectors[1])
}
