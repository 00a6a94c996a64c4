package json

type parserState uint8

const (
	eIdle parserState = iota + 1
	eDictKey
	eDictColon
	eDictValue
	eDictComma
	eArrayElement
	eArrayComma
	eDone
	eError
)

type tokenizerState uint8

const (
	eWhitespace tokenizerState = iota + 1
	eStringChar
	eStringEscape
	eStringUnicode
	eNumberMinus
	eNumberZero
	eNumberDigit
	eNumberDot
	eNumberFraction
	eNumberExpSign
	eNumberExpFirstDigit
	eNumberExp
	eLiteral
)
