package engine

import "time"

// GoParams mirrors the subset of the UCI "go" command the root driver
// cares about. Zero values mean "not specified".
type GoParams struct {
	WTime, BTime     time.Duration
	WInc, BInc       time.Duration
	MovesToGo        int
	MoveTime         time.Duration
	Depth            int
	Infinite         bool
}

// AllocateTime derives a per-move time budget from a UCI "go" command
// for the side to move, using the classic "remaining / movesToGo,
// plus most of the increment" allocation: assume 30 moves left if the
// engine wasn't told movestogo, and never plan to spend more than the
// clock actually has.
func AllocateTime(p GoParams, whiteToMove bool) time.Duration {
	if p.Infinite {
		return time.Hour
	}
	if p.MoveTime > 0 {
		return p.MoveTime
	}

	remaining, inc := p.WTime, p.WInc
	if !whiteToMove {
		remaining, inc = p.BTime, p.BInc
	}
	if remaining <= 0 {
		return 2 * time.Second
	}

	movesToGo := p.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}

	budget := remaining/time.Duration(movesToGo) + inc*3/4
	if budget > remaining-100*time.Millisecond {
		budget = remaining - 100*time.Millisecond
	}
	if budget < 10*time.Millisecond {
		budget = 10 * time.Millisecond
	}
	return budget
}
