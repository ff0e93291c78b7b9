package ruletree

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokString
	tokNumber
	tokSlash
	tokDoubleSlash
	tokDot
	tokDotDot
	tokStar
	tokAt
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokEq
	tokNeq
	tokPipe
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of selector"
	case tokName:
		return "name"
	case tokString:
		return "string literal"
	case tokNumber:
		return "number"
	case tokSlash:
		return "'/'"
	case tokDoubleSlash:
		return "'//'"
	case tokDot:
		return "'.'"
	case tokDotDot:
		return "'..'"
	case tokStar:
		return "'*'"
	case tokAt:
		return "'@'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokEq:
		return "'='"
	case tokNeq:
		return "'!='"
	case tokPipe:
		return "'|'"
	default:
		return "token(" + strconv.Itoa(int(k)) + ")"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokName || t.kind == tokNumber {
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}
	return t.kind.String()
}

// lex splits src into tokens. The final token is always tokEOF.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '/':
			if i+1 < len(src) && src[i+1] == '/' {
				toks = append(toks, token{tokDoubleSlash, "//", i})
				i += 2
			} else {
				toks = append(toks, token{tokSlash, "/", i})
				i++
			}
		case c == '.':
			if i+1 < len(src) && src[i+1] == '.' {
				toks = append(toks, token{tokDotDot, "..", i})
				i += 2
			} else {
				toks = append(toks, token{tokDot, ".", i})
				i++
			}
		case c == '!':
			if i+1 >= len(src) || src[i+1] != '=' {
				return nil, &SelectorError{Selector: src, Pos: i, Msg: "expected '=' after '!'"}
			}
			toks = append(toks, token{tokNeq, "!=", i})
			i += 2
		case c == '\'' || c == '"':
			end := i + 1
			for end < len(src) && src[end] != c {
				end++
			}
			if end >= len(src) {
				return nil, &SelectorError{Selector: src, Pos: i, Msg: "unterminated string literal"}
			}
			toks = append(toks, token{tokString, src[i+1 : end], i})
			i = end + 1
		case c >= '0' && c <= '9':
			start := i
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				i++
			}
			toks = append(toks, token{tokNumber, src[start:i], start})
		default:
			if kind, ok := punct[c]; ok {
				toks = append(toks, token{kind, string(c), i})
				i++
				continue
			}
			r, size := utf8.DecodeRuneInString(src[i:])
			if !isNameStart(r) {
				return nil, &SelectorError{Selector: src, Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
			}
			start := i
			i += size
			for i < len(src) {
				r, size = utf8.DecodeRuneInString(src[i:])
				if !isNameChar(r) {
					break
				}
				i += size
			}
			toks = append(toks, token{tokName, src[start:i], start})
		}
	}
	return append(toks, token{tokEOF, "", len(src)}), nil
}

var punct = map[byte]tokenKind{
	'*': tokStar,
	'@': tokAt,
	'[': tokLBracket,
	']': tokRBracket,
	'(': tokLParen,
	')': tokRParen,
	'=': tokEq,
	'|': tokPipe,
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || r == '-' || unicode.IsDigit(r)
}
