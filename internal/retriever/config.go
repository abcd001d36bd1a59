package retriever

const (
	DefaultTopK           = 5
	DefaultScoreThreshold = 0.2

	NoMatchSource = "No relevant content found"

	OutOfScopeMessage = "This topic is not covered in the textbook. Please try asking about ROS 2, Digital Twins, or Isaac Sim."
)

type Config struct {
	TopK           int
	ScoreThreshold float64
}

func DefaultConfig() Config {
	return Config{
		TopK:           DefaultTopK,
		ScoreThreshold: DefaultScoreThreshold,
	}
}
