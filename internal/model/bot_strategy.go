package model

// Bot strategy constants
const (
	BotStrategyGreedy = "greedy"
	BotStrategyRandom = "random"
)

// DefaultBotStrategy is used when a request leaves the strategy blank
const DefaultBotStrategy = BotStrategyGreedy

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyGreedy:
		return "Greedy"
	case BotStrategyRandom:
		return "Random"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyGreedy, BotStrategyRandom}
}

// IsValidBotStrategy reports whether s names a known strategy
func IsValidBotStrategy(s string) bool {
	for _, v := range ValidBotStrategies() {
		if v == s {
			return true
		}
	}
	return false
}
