package token

// Stream adapts a Lexer into the peek/next/undo token.Source the parser
// consumes. It buffers one look-ahead token and keeps every consumed token
// in history, so that Undo() can push back the most recent Next().
type Stream struct {
	lex      *Lexer
	lookhead *Tracked[RawToken]
	history  []Tracked[RawToken]
	// pending holds tokens pushed back by Undo, replayed before new scans.
	pending []Tracked[RawToken]
}

// NewStream builds a Stream over normalized source text.
func NewStream(src []byte, filename string) *Stream {
	normalized := Normalize(src)
	return &Stream{lex: New(string(normalized), filename)}
}

func (s *Stream) scan() Tracked[RawToken] {
	if n := len(s.pending); n > 0 {
		t := s.pending[n-1]
		s.pending = s.pending[:n-1]
		return t
	}
	return s.lex.NextToken()
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() Tracked[RawToken] {
	if s.lookhead == nil {
		t := s.scan()
		s.lookhead = &t
	}
	return *s.lookhead
}

// Next consumes and returns the next token.
func (s *Stream) Next() Tracked[RawToken] {
	var t Tracked[RawToken]
	if s.lookhead != nil {
		t = *s.lookhead
		s.lookhead = nil
	} else {
		t = s.scan()
	}
	s.history = append(s.history, t)
	return t
}

// Undo pushes the most recently consumed token back onto the stream. It
// may be called once per Next() and is used by the parser to backtrack
// when a speculative lookahead doesn't pan out (e.g. "is the next token
// an operator?").
func (s *Stream) Undo() {
	if n := len(s.history); n > 0 {
		last := s.history[n-1]
		s.history = s.history[:n-1]
		if s.lookhead != nil {
			s.pending = append(s.pending, *s.lookhead)
		}
		s.lookhead = &last
	}
}

// Position returns the byte offset of the current lookahead token.
func (s *Stream) Position() int {
	return s.Peek().At.Offset
}

var _ Source = (*Stream)(nil)
