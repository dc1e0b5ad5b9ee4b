package engine

import (
	"math/rand"

	"chesshud/types"
)

// RandomChooser plays a uniformly random legal move.
type RandomChooser struct {
	eng RulesEngine
	rnd *rand.Rand
}

func NewRandomChooser(eng RulesEngine, seed int64) *RandomChooser {
	return &RandomChooser{eng: eng, rnd: rand.New(rand.NewSource(seed))}
}

func (c *RandomChooser) ChooseMove() (types.MoveRequest, error) {
	moves := c.eng.LegalMoves()
	if len(moves) == 0 {
		return types.MoveRequest{}, ErrNoMoves
	}
	return moves[c.rnd.Intn(len(moves))], nil
}
