package json

type tokenKind uint8

const (
	tokNone tokenKind = iota
	tokObjectOpen
	tokObjectClose
	tokArrayOpen
	tokArrayClose
	tokColon
	tokComma
	tokString
	tokNumber
	tokTrue
	tokFalse
	tokNull
)

var tokenKindStr = [...]string{
	tokNone:        "nothing",
	tokObjectOpen:  "'{'",
	tokObjectClose: "'}'",
	tokArrayOpen:   "'['",
	tokArrayClose:  "']'",
	tokColon:       "':'",
	tokComma:       "','",
	tokString:      "string",
	tokNumber:      "number",
	tokTrue:        "true",
	tokFalse:       "false",
	tokNull:        "null",
}

func (k tokenKind) String() string {
	if int(k) >= len(tokenKindStr) {
		return "unknown token"
	}

	return tokenKindStr[k]
}

// token is a single lexical element. str aliases the tokenizer's accumulation
// buffer and stays valid only until the next token is produced.
type token struct {
	kind      tokenKind
	str       []byte
	num       float64
	truncated bool
}

// ValueKind discriminates which payload field of a Value is meaningful.
type ValueKind uint8

const (
	ValueString ValueKind = iota + 1
	ValueNumber
	ValueBool
	ValueNull
)

// Value is a decoded scalar. Str aliases parser-owned memory and must be
// copied if retained past the handler call.
type Value struct {
	Kind ValueKind
	// Str holds the decoded string payload, capped at
	// config.JSON.MaxStringLength.
	Str []byte
	// Truncated is set when Str was capped at the limit.
	Truncated bool
	Num       float64
	Bool      bool
}
