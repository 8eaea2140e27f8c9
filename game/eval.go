package game

import "math/bits"

var corners = [4]Position{0, 7, 56, 63}

// cornerNeighbor pairs a square next to a corner with that corner.
type cornerNeighbor struct {
	square Position
	corner Position
}

// X-squares: diagonally adjacent to a corner.
var xSquares = [4]cornerNeighbor{
	{9, 0},   // B2
	{14, 7},  // G2
	{49, 56}, // B7
	{54, 63}, // G7
}

// C-squares: orthogonally adjacent to a corner.
var cSquares = [8]cornerNeighbor{
	{1, 0},   // B1
	{8, 0},   // A2
	{6, 7},   // G1
	{15, 7},  // H2
	{48, 56}, // A7
	{57, 56}, // B8
	{55, 63}, // H7
	{62, 63}, // G8
}

// edge is a full board edge and the two corners that anchor it.
type edge struct {
	mask    uint64
	corners [2]Position
}

var edges = [4]edge{
	{0x00000000000000ff, [2]Position{0, 7}},   // rank 1
	{0xff00000000000000, [2]Position{56, 63}}, // rank 8
	{0x0101010101010101, [2]Position{0, 56}},  // file A
	{0x8080808080808080, [2]Position{7, 63}},  // file H
}

var neighborMasks = func() [Squares]uint64 {
	var masks [Squares]uint64
	for pos := 0; pos < Squares; pos++ {
		row, col := pos/BoardSize, pos%BoardSize
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := row+dr, col+dc
				if (dr == 0 && dc == 0) || r < 0 || r >= BoardSize || c < 0 || c >= BoardSize {
					continue
				}
				masks[pos] |= Pos(r, c).Mask()
			}
		}
	}
	return masks
}()

// Evaluate scores board from player's perspective. A position where neither
// side can move is scored from the final disc counts near ScoreWin/ScoreLoss;
// anything else is a sum of positional heuristics.
func Evaluate(board Board, player Player) Score {
	opp := player.Opponent()
	if !HasMoves(board, player) && !HasMoves(board, opp) {
		own, other := Score(board.Count(player)), Score(board.Count(opp))
		switch {
		case own > other:
			return ScoreWin - other*100
		case other > own:
			return ScoreLoss + own*100
		default:
			return 0
		}
	}

	return evaluateCorners(board, player) +
		evaluateMobility(board, player) +
		evaluateFrontier(board, player) +
		evaluateDiscCount(board, player) +
		evaluateStability(board, player)
}

// QuickEvaluate looks at corners and mobility only. It ranks positions like
// Evaluate but is cheaper.
func QuickEvaluate(board Board, player Player) Score {
	return cornerOwnership(board, player) + evaluateMobility(board, player)
}

func cornerOwnership(board Board, player Player) Score {
	own, opp := board.Discs(player), board.Discs(player.Opponent())
	var score Score
	for _, corner := range corners {
		switch {
		case own&corner.Mask() != 0:
			score += 100
		case opp&corner.Mask() != 0:
			score -= 100
		}
	}
	return score
}

// evaluateCorners rewards corners and penalizes X/C squares next to a corner
// nobody holds yet.
func evaluateCorners(board Board, player Player) Score {
	own, opp := board.Discs(player), board.Discs(player.Opponent())
	occupied := own | opp
	score := cornerOwnership(board, player)

	penalize := func(neighbors []cornerNeighbor, weight Score) {
		for _, n := range neighbors {
			if occupied&n.corner.Mask() != 0 {
				continue
			}
			switch {
			case own&n.square.Mask() != 0:
				score -= weight
			case opp&n.square.Mask() != 0:
				score += weight
			}
		}
	}
	penalize(xSquares[:], 25)
	penalize(cSquares[:], 10)
	return score
}

func evaluateMobility(board Board, player Player) Score {
	own := Score(CountMoves(board, player))
	opp := Score(CountMoves(board, player.Opponent()))
	return (own - opp) * 3
}

func countFrontier(board Board, player Player) int {
	empty := board.EmptySquares()
	n := 0
	for pos := range Bits(board.Discs(player)) {
		if neighborMasks[pos]&empty != 0 {
			n++
		}
	}
	return n
}

// evaluateFrontier prefers fewer discs bordering empty squares.
func evaluateFrontier(board Board, player Player) Score {
	return Score(countFrontier(board, player.Opponent()) - countFrontier(board, player))
}

func discWeight(empty int) Score {
	switch {
	case empty > 44:
		return 0
	case empty > 20:
		return 1
	case empty > 10:
		return 2
	default:
		return 5
	}
}

func evaluateDiscCount(board Board, player Player) Score {
	own := Score(board.Count(player))
	opp := Score(board.Count(player.Opponent()))
	return (own - opp) * discWeight(board.EmptyCount())
}

// countStable approximates stable discs: corners, plus every own disc on a
// filled edge whose corner the player holds. Not a full stability solver.
func countStable(board Board, player Player) int {
	own := board.Discs(player)
	occupied := board.Occupied()

	var stable uint64
	for _, corner := range corners {
		stable |= own & corner.Mask()
	}
	for _, e := range edges {
		if occupied&e.mask != e.mask {
			continue
		}
		if own&(e.corners[0].Mask()|e.corners[1].Mask()) != 0 {
			stable |= own & e.mask
		}
	}
	return bits.OnesCount64(stable)
}

func evaluateStability(board Board, player Player) Score {
	return Score(countStable(board, player)-countStable(board, player.Opponent())) * 10
}
