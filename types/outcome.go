package types

import "fmt"

// OutcomeKind is the closed set of ways a game can end.
type OutcomeKind uint8

const (
	OutcomeNone OutcomeKind = iota
	OutcomeCheckmate
	OutcomeStalemate
	OutcomeThreefold
	OutcomeInsufficientMaterial
	OutcomeMoveLimit
	OutcomeTimeout
	OutcomeResignation
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomeCheckmate:
		return "checkmate"
	case OutcomeStalemate:
		return "stalemate"
	case OutcomeThreefold:
		return "threefold-repetition"
	case OutcomeInsufficientMaterial:
		return "insufficient-material"
	case OutcomeMoveLimit:
		return "move-limit"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeResignation:
		return "resignation"
	default:
		return fmt.Sprintf("outcome(%d)", k)
	}
}

// Result is the terminal state of a game. The zero value is an ongoing game.
type Result struct {
	Kind      OutcomeKind
	Winner    Color
	HasWinner bool
}

// Won builds a decisive result.
func Won(kind OutcomeKind, winner Color) Result {
	return Result{Kind: kind, Winner: winner, HasWinner: true}
}

// Drawn builds a result without a winner.
func Drawn(kind OutcomeKind) Result {
	return Result{Kind: kind}
}

// Over reports whether the game has ended.
func (r Result) Over() bool {
	return r.Kind != OutcomeNone
}

// Message returns the end-of-game line shown to the players.
func (r Result) Message(whiteName, blackName string) string {
	winner := whiteName
	if r.Winner == Black {
		winner = blackName
	}
	switch r.Kind {
	case OutcomeNone:
		return ""
	case OutcomeStalemate:
		return "Tie by Stalemate!"
	case OutcomeThreefold:
		return "Draw by Threefold Repetition!"
	case OutcomeInsufficientMaterial:
		return "Draw by insufficient material!"
	case OutcomeMoveLimit:
		return "Draw by the 75-move rule!"
	case OutcomeTimeout:
		return fmt.Sprintf("%s wins on time!", winner)
	case OutcomeResignation:
		return fmt.Sprintf("%s wins by resignation!", winner)
	case OutcomeCheckmate:
		return fmt.Sprintf("%s wins!", winner)
	default:
		return "Game Over"
	}
}
