package session

import (
	"fmt"
	"strings"
)

// PlayerType says who controls a color: a human or the AI at one of its
// three search depths.
type PlayerType int

const (
	Human PlayerType = iota
	AIDepth4
	AIDepth5
	AIDepth6
)

// IsAI checks if the player is AI controlled.
func (p PlayerType) IsAI() bool {
	return p != Human
}

// SearchDepth returns the minimax depth for AI players, 0 for humans.
func (p PlayerType) SearchDepth() int {
	switch p {
	case AIDepth4:
		return 4
	case AIDepth5:
		return 5
	case AIDepth6:
		return 6
	default:
		return 0
	}
}

func (p PlayerType) String() string {
	switch p {
	case Human:
		return "human"
	case AIDepth4:
		return "ai-4"
	case AIDepth5:
		return "ai-5"
	case AIDepth6:
		return "ai-6"
	default:
		return fmt.Sprintf("player-type(%d)", int(p))
	}
}

// ParsePlayerType parses the wire names "human", "ai-4", "ai-5" and "ai-6".
func ParsePlayerType(s string) (PlayerType, error) {
	switch strings.ToLower(s) {
	case "human":
		return Human, nil
	case "ai-4":
		return AIDepth4, nil
	case "ai-5":
		return AIDepth5, nil
	case "ai-6":
		return AIDepth6, nil
	default:
		return Human, fmt.Errorf("unknown player type: %s", s)
	}
}
