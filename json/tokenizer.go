package json

import (
	"strconv"
	"unicode/utf8"

	"github.com/indigo-web/trickle/config"
	"github.com/indigo-web/trickle/internal/grammar"
	"github.com/indigo-web/trickle/internal/hexconv"
	"github.com/indigo-web/trickle/status"
	"github.com/indigo-web/utils/uf"
)

// tokenizer is a resumable lexer. It consumes exactly one byte per call and
// may be suspended at any byte boundary.
type tokenizer struct {
	cfg        config.JSON
	state      tokenizerState
	buff       []byte
	truncated  bool
	literal    string
	literalIdx int
	escape     rune
	escapeLen  int
}

func newTokenizer(cfg config.JSON) tokenizer {
	return tokenizer{
		cfg:   cfg,
		state: eWhitespace,
		buff:  make([]byte, 0, cfg.MaxTokenLength),
	}
}

// next processes a single byte. When consumed is false the byte terminated a
// token without being part of it and must be presented again. tok.kind is
// tokNone if no token was completed by this byte.
func (t *tokenizer) next(char byte) (tok token, consumed bool, err error) {
	switch t.state {
	case eWhitespace:
		return t.whitespace(char)
	case eStringChar:
		return t.stringChar(char)
	case eStringEscape:
		return t.stringEscape(char)
	case eStringUnicode:
		return t.stringUnicode(char)
	case eNumberMinus:
		return t.numberMinus(char)
	case eNumberZero:
		return t.numberZero(char)
	case eNumberDigit:
		return t.numberDigit(char)
	case eNumberDot:
		return t.numberDot(char)
	case eNumberFraction:
		return t.numberFraction(char)
	case eNumberExpSign:
		return t.numberExpSign(char)
	case eNumberExpFirstDigit:
		return t.numberExpFirstDigit(char)
	case eNumberExp:
		return t.numberExp(char)
	case eLiteral:
		return t.literalChar(char)
	default:
		panic("BUG: json tokenizer: unknown state")
	}
}

func (t *tokenizer) release() {
	t.buff = nil
}

func (t *tokenizer) whitespace(char byte) (token, bool, error) {
	switch char {
	case ' ', '\t', '\r', '\n':
		return token{}, true, nil
	case '{':
		return token{kind: tokObjectOpen}, true, nil
	case '}':
		return token{kind: tokObjectClose}, true, nil
	case '[':
		return token{kind: tokArrayOpen}, true, nil
	case ']':
		return token{kind: tokArrayClose}, true, nil
	case ':':
		return token{kind: tokColon}, true, nil
	case ',':
		return token{kind: tokComma}, true, nil
	case '"':
		t.buff = t.buff[:0]
		t.truncated = false
		t.state = eStringChar
		return token{}, true, nil
	case '-':
		t.buff = append(t.buff[:0], char)
		t.state = eNumberMinus
		return token{}, true, nil
	case 't':
		return t.beginLiteral("true")
	case 'f':
		return t.beginLiteral("false")
	case 'n':
		return t.beginLiteral("null")
	default:
		if grammar.IsDigit(char) {
			t.buff = append(t.buff[:0], char)
			if char == '0' {
				t.state = eNumberZero
			} else {
				t.state = eNumberDigit
			}
			return token{}, true, nil
		}

		return token{}, false, status.ErrInvalidToken
	}
}

func (t *tokenizer) beginLiteral(literal string) (token, bool, error) {
	t.literal = literal
	t.literalIdx = 1
	t.state = eLiteral
	return token{}, true, nil
}

func (t *tokenizer) literalChar(char byte) (token, bool, error) {
	if char != t.literal[t.literalIdx] {
		return token{}, false, status.ErrInvalidToken
	}

	if t.literalIdx++; t.literalIdx < len(t.literal) {
		return token{}, true, nil
	}

	t.state = eWhitespace

	switch t.literal {
	case "true":
		return token{kind: tokTrue}, true, nil
	case "false":
		return token{kind: tokFalse}, true, nil
	default:
		return token{kind: tokNull}, true, nil
	}
}

// push appends a decoded string byte, discarding everything past the soft
// string limit.
func (t *tokenizer) push(char byte) {
	if len(t.buff) >= t.cfg.MaxStringLength {
		t.truncated = true
		return
	}

	t.buff = append(t.buff, char)
}

func (t *tokenizer) stringChar(char byte) (token, bool, error) {
	switch {
	case char == '"':
		t.state = eWhitespace
		return token{kind: tokString, str: t.buff, truncated: t.truncated}, true, nil
	case char == '\\':
		t.state = eStringEscape
		return token{}, true, nil
	case char < 0x20:
		return token{}, false, status.ErrBadStringChar
	default:
		t.push(char)
		return token{}, true, nil
	}
}

func (t *tokenizer) stringEscape(char byte) (token, bool, error) {
	switch char {
	case '"', '\\', '/':
		t.push(char)
	case 'b':
		t.push('\b')
	case 'f':
		t.push('\f')
	case 'n':
		t.push('\n')
	case 'r':
		t.push('\r')
	case 't':
		t.push('\t')
	case 'u':
		t.escape = 0
		t.escapeLen = 0
		t.state = eStringUnicode
		return token{}, true, nil
	default:
		return token{}, false, status.ErrBadEscape
	}

	t.state = eStringChar
	return token{}, true, nil
}

func (t *tokenizer) stringUnicode(char byte) (token, bool, error) {
	value := hexconv.Halfbyte[char]
	if value == 0xFF {
		return token{}, false, status.ErrBadUnicodeEscape
	}

	t.escape = t.escape<<4 | rune(value)
	if t.escapeLen++; t.escapeLen < 4 {
		return token{}, true, nil
	}

	// code points past the BMP would require a second escape of the
	// surrogate pair, which is not supported
	if t.escape >= 0xD800 && t.escape <= 0xDFFF {
		return token{}, false, status.ErrSurrogateEscape
	}

	var encoded [utf8.UTFMax]byte
	n := utf8.EncodeRune(encoded[:], t.escape)
	for _, b := range encoded[:n] {
		t.push(b)
	}

	t.state = eStringChar
	return token{}, true, nil
}

// pushNumber appends a number byte, failing hard past the token limit: a
// truncated number would be a silently wrong number.
func (t *tokenizer) pushNumber(char byte) error {
	if len(t.buff) >= t.cfg.MaxTokenLength {
		return status.ErrTokenTooLong
	}

	t.buff = append(t.buff, char)
	return nil
}

// endNumber converts the accumulated text. The terminating byte is never
// part of the token, so the caller must re-present it.
func (t *tokenizer) endNumber() (token, bool, error) {
	num, err := strconv.ParseFloat(uf.B2S(t.buff), 64)
	if err != nil {
		return token{}, false, status.ErrBadNumber
	}

	t.state = eWhitespace
	return token{kind: tokNumber, num: num}, false, nil
}

func (t *tokenizer) numberMinus(char byte) (token, bool, error) {
	if !grammar.IsDigit(char) {
		return token{}, false, status.ErrBadNumber
	}

	if char == '0' {
		t.state = eNumberZero
	} else {
		t.state = eNumberDigit
	}

	return token{}, true, t.pushNumber(char)
}

func (t *tokenizer) numberZero(char byte) (token, bool, error) {
	switch {
	case char == '.':
		t.state = eNumberDot
		return token{}, true, t.pushNumber(char)
	case grammar.IsDigit(char):
		// a leading zero may only be followed by a dot or a terminator
		return token{}, false, status.ErrBadNumber
	default:
		return t.endNumber()
	}
}

func (t *tokenizer) numberDigit(char byte) (token, bool, error) {
	switch {
	case grammar.IsDigit(char):
		return token{}, true, t.pushNumber(char)
	case char == '.':
		t.state = eNumberDot
		return token{}, true, t.pushNumber(char)
	case char == 'e' || char == 'E':
		t.state = eNumberExpSign
		return token{}, true, t.pushNumber(char)
	default:
		return t.endNumber()
	}
}

func (t *tokenizer) numberDot(char byte) (token, bool, error) {
	if !grammar.IsDigit(char) {
		return token{}, false, status.ErrBadNumber
	}

	t.state = eNumberFraction
	return token{}, true, t.pushNumber(char)
}

func (t *tokenizer) numberFraction(char byte) (token, bool, error) {
	switch {
	case grammar.IsDigit(char):
		return token{}, true, t.pushNumber(char)
	case char == 'e' || char == 'E':
		t.state = eNumberExpSign
		return token{}, true, t.pushNumber(char)
	default:
		return t.endNumber()
	}
}

func (t *tokenizer) numberExpSign(char byte) (token, bool, error) {
	switch {
	case char == '+' || char == '-':
		t.state = eNumberExpFirstDigit
		return token{}, true, t.pushNumber(char)
	case grammar.IsDigit(char):
		t.state = eNumberExp
		return token{}, true, t.pushNumber(char)
	default:
		return token{}, false, status.ErrBadNumber
	}
}

func (t *tokenizer) numberExpFirstDigit(char byte) (token, bool, error) {
	if !grammar.IsDigit(char) {
		return token{}, false, status.ErrBadNumber
	}

	t.state = eNumberExp
	return token{}, true, t.pushNumber(char)
}

func (t *tokenizer) numberExp(char byte) (token, bool, error) {
	if grammar.IsDigit(char) {
		return token{}, true, t.pushNumber(char)
	}

	return t.endNumber()
}
