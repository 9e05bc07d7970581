package scanner

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"atlint/internal/diag"
	"atlint/internal/source"
)

// directiveMarker introduces a suppression directive inside a line comment.
const directiveMarker = "atlint:"

// commentWord is the m4 line-comment identifier. Outside argument capture the
// rest of the line after it is discarded from macro scanning, but still
// inspected for a directive marker. '#' comments are handled the same way.
const commentWord = "dnl"

// Scanner is a single-pass character automaton that turns raw configure
// script text into an ordered sequence of macro invocations and an ordered
// sequence of suppression directives, each with absolute coordinates.
//
// The scanner never fails: unbalanced quoting or an unterminated call is
// absorbed by running to the end of the buffer with best-effort results.
type Scanner struct {
	cur        Cursor
	opts       Options
	prev       byte
	macros     []Macro
	directives []Directive
}

// New creates a scanner over src whose first byte sits at anchor.
func New(src []byte, anchor source.Pos, opts Options) *Scanner {
	return &Scanner{
		cur:  NewCursor(src, anchor),
		opts: opts,
	}
}

// Scan is a convenience wrapper around New(...).Scan().
func Scan(src []byte, anchor source.Pos, opts Options) ([]Macro, []Directive) {
	return New(src, anchor, opts).Scan()
}

// Scan runs the automaton over the whole buffer and returns the discovered
// macros and directives in source order.
func (s *Scanner) Scan() ([]Macro, []Directive) {
	var name []byte
	var nameStart source.Pos

	flushBare := func() {
		if len(name) == 0 {
			return
		}
		// Identifier ended without an argument list: a bare reference,
		// recorded as a zero-argument macro at its first character.
		s.record(Macro{Name: string(name), Pos: nameStart})
		name = name[:0]
	}

	for !s.cur.EOF() {
		pos := s.cur.Pos()
		ch := s.cur.Peek()

		switch {
		case isMacroNameByte(ch) || (len(name) > 0 && isDigit(ch)):
			if len(name) == 0 {
				nameStart = pos
			}
			name = append(name, s.bump())

		case ch == '(' && len(name) > 0:
			m := Macro{Name: string(name), Pos: nameStart}
			name = name[:0]
			s.bump()
			s.scanArgs(&m, pos)
			s.record(m)

		case isLower(ch):
			if len(name) > 0 {
				// Lowercase continuation: not a macro name after all.
				name = name[:0]
				s.bump()
				continue
			}
			if s.atCommentWord() {
				s.bump()
				s.bump()
				s.bump()
				s.skipLine()
				continue
			}
			s.bump()

		case ch == '#':
			flushBare()
			s.bump()
			s.skipLine()

		default:
			flushBare()
			s.bump()
		}
	}
	flushBare()

	return s.macros, s.directives
}

// bump consumes one byte, remembering it for word-boundary checks.
func (s *Scanner) bump() byte {
	s.prev = s.cur.Bump()
	return s.prev
}

// record keeps the macro if its name carries a recognized prefix, applying
// the post-scan normalization pass first.
func (s *Scanner) record(m Macro) {
	if !HasRecognizedPrefix(m.Name) {
		return
	}
	m.normalize()
	s.macros = append(s.macros, m)
}

// scanArgs captures the argument list of an open call. openPos is the
// coordinate of the opening parenthesis, which doubles as the coordinate
// immediately following the macro's name.
//
// A quote-delimiter counter tracks [ ] balance; only at quote depth zero are
// the comma and the closing parenthesis significant, and the comma only at
// parenthesis depth one. Argument text is captured verbatim, embedded line
// breaks included, so a quoted argument spanning several lines does not
// terminate the call early.
func (s *Scanner) scanArgs(m *Macro, openPos source.Pos) {
	quoteLevel := 0
	parenDepth := 1
	var raw []byte
	var argPos source.Pos
	havePos := false

	flush := func(sepPos source.Pos) {
		if !havePos {
			// Whitespace-only argument: the delimiting separator's coordinate.
			argPos = sepPos
		}
		m.Args = append(m.Args, string(raw))
		m.ArgPos = append(m.ArgPos, argPos)
		raw = raw[:0]
		havePos = false
	}

	// A call written with one blank argument slot stays diagnosable at a
	// stable, name-relative location.
	adjustLoneBlank := func() {
		if len(m.Args) == 1 && strings.TrimSpace(m.Args[0]) == "" {
			m.ArgPos[0] = openPos
		}
	}

	for !s.cur.EOF() {
		pos := s.cur.Pos()
		ch := s.cur.Peek()

		// The first significant character fixes the argument's position:
		// the quote-open delimiter when the argument begins quoted,
		// otherwise the first non-whitespace character.
		if !havePos && !isSpaceByte(ch) {
			argPos = pos
			havePos = true
		}

		switch {
		case ch == '[':
			quoteLevel++
		case ch == ']':
			quoteLevel--
		case quoteLevel == 0 && ch == '(':
			parenDepth++
		case quoteLevel == 0 && ch == ')':
			parenDepth--
			if parenDepth == 0 {
				s.bump()
				flush(pos)
				adjustLoneBlank()
				return
			}
		case quoteLevel == 0 && ch == ',' && parenDepth == 1:
			s.bump()
			flush(pos)
			continue
		}

		raw = append(raw, s.bump())
	}

	// Unterminated call: absorb the rest of the buffer as the final argument.
	flush(s.cur.Pos())
	adjustLoneBlank()
}

// atCommentWord reports whether the cursor stands at the exact "dnl"
// identifier token: bounded on both sides by non-identifier characters.
func (s *Scanner) atCommentWord() bool {
	if isIdentByte(s.prev) {
		return false
	}
	for i := 0; i < len(commentWord); i++ {
		if s.cur.PeekAt(i) != commentWord[i] {
			return false
		}
	}
	return !isIdentByte(s.cur.PeekAt(len(commentWord)))
}

// skipLine discards the remainder of the current line from macro scanning and
// inspects it verbatim for a directive marker.
func (s *Scanner) skipLine() {
	lineStart := s.cur.Pos()
	var rest []byte
	for !s.cur.EOF() && s.cur.Peek() != '\n' {
		rest = append(rest, s.bump())
	}
	if s.cur.Peek() == '\n' {
		s.bump()
	}
	s.inspectDirective(string(rest), lineStart)
}

// inspectDirective looks for the "atlint:" marker in skipped comment text.
// The payload after the marker is trimmed and matched case-insensitively
// against the four action keywords; a failed match produces a positioned
// warning instead of a directive.
func (s *Scanner) inspectDirective(rest string, lineStart source.Pos) {
	idx := strings.Index(rest, directiveMarker)
	if idx < 0 {
		return
	}
	offset, err := safecast.Conv[uint32](idx)
	if err != nil {
		panic(fmt.Errorf("directive marker offset overflow: %w", err))
	}
	markerPos := source.Pos{Line: lineStart.Line, Col: lineStart.Col + offset}

	payload := strings.TrimSpace(rest[idx+len(directiveMarker):])
	action, ok := LookupDirectiveAction(payload)
	if !ok {
		s.report(diag.ScanUnknownDirective, markerPos,
			fmt.Sprintf("Unknown directive %q. Expected one of: ignore, ignore-next, disable, enable.", payload))
		return
	}
	s.directives = append(s.directives, Directive{Action: action, Pos: markerPos})
}

func isMacroNameByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func isIdentByte(b byte) bool {
	return isMacroNameByte(b) || isLower(b) || isDigit(b)
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
