// Package review navigates the history of a game and explores alternate
// lines from any point of it.
package review

import "othello/game"

// WhatIf holds a base game and a view into it. Playing a move that the base
// game did not play branches the view; navigation is disabled until the
// view is reset onto the base game.
type WhatIf struct {
	base      *game.GameState
	current   *game.GameState
	viewIndex int
	branched  bool
}

// New starts reviewing a copy of state at its last ply.
func New(state *game.GameState) *WhatIf {
	return &WhatIf{
		base:      state.Clone(),
		current:   state.Clone(),
		viewIndex: state.MoveCount(),
	}
}

// Current is the position being viewed. Callers must not mutate it.
func (w *WhatIf) Current() *game.GameState {
	return w.current
}

func (w *WhatIf) Base() *game.GameState {
	return w.base
}

func (w *WhatIf) IsBranched() bool {
	return w.branched
}

func (w *WhatIf) StepBack() {
	if w.branched || w.viewIndex == 0 {
		return
	}
	w.view(w.viewIndex - 1)
}

func (w *WhatIf) StepForward() {
	if w.branched || w.viewIndex == w.base.MoveCount() {
		return
	}
	w.view(w.viewIndex + 1)
}

func (w *WhatIf) JumpToStart() {
	if w.branched {
		return
	}
	w.view(0)
}

func (w *WhatIf) JumpToEnd() {
	if w.branched {
		return
	}
	w.view(w.base.MoveCount())
}

// MakeAlternateMove plays pos on the viewed position and branches.
// It reports false, leaving the view unchanged, when pos is illegal.
func (w *WhatIf) MakeAlternateMove(pos game.Position) bool {
	if _, ok := w.current.MakeMove(pos); !ok {
		return false
	}
	w.branched = true
	return true
}

// Pass branches with a pass when the viewed player has no legal move.
func (w *WhatIf) Pass() bool {
	if !w.current.Pass() {
		return false
	}
	w.branched = true
	return true
}

// ResetToMove drops any branch and views the base game after i plies.
func (w *WhatIf) ResetToMove(i int) {
	w.branched = false
	w.view(max(0, min(i, w.base.MoveCount())))
}

func (w *WhatIf) ResetToStart() {
	w.ResetToMove(0)
}

// CurrentMoveNumber counts the plies behind the viewed position, including
// any played on a branch.
func (w *WhatIf) CurrentMoveNumber() int {
	if w.branched {
		return w.current.MoveCount()
	}
	return w.viewIndex
}

func (w *WhatIf) TotalMoves() int {
	return w.base.MoveCount()
}

func (w *WhatIf) view(i int) {
	w.viewIndex = i
	w.current = w.base.CloneAtMove(i)
}
