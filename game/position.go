package game

// String returns the algebraic name of the square, e.g. "D3", or "--" for a
// pass.
func (p Position) String() string {
	if p.IsPass() {
		return "--"
	}
	if p >= Squares {
		return "??"
	}
	return string([]byte{byte('A' + p.Col()), byte('1' + p.Row())})
}

// ParsePosition parses algebraic notation. The file letter is case
// insensitive; anything other than a file A-H followed by a rank 1-8 fails.
func ParsePosition(s string) (Position, bool) {
	if len(s) != 2 {
		return 0, false
	}
	file, rank := s[0], s[1]
	if file >= 'a' && file <= 'z' {
		file -= 'a' - 'A'
	}
	if file < 'A' || file > 'H' || rank < '1' || rank > '8' {
		return 0, false
	}
	return Pos(int(rank-'1'), int(file-'A')), true
}
