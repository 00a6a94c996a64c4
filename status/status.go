// Package status defines the error model shared by both parsers. Every
// failure is a plain value of type Error, comparable and allocation-free.
package status

// Kind classifies a parse failure.
type Kind uint8

const (
	// Grammar covers malformed tokens, bad status lines, bad header syntax
	// and structural mismatches.
	Grammar Kind = iota + 1
	// ResourceLimit covers tokens, lines or literals exceeding their
	// configured bounds.
	ResourceLimit
	// Unsupported covers well-formed input the parser deliberately does not
	// handle.
	Unsupported
	// ProtocolState covers operations invoked after a terminal state, and
	// input ending before the message was complete.
	ProtocolState
)

type Error struct {
	Message string
	Kind    Kind
}

func NewError(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

func (e Error) Error() string {
	return e.Message
}

var (
	ErrInvalidToken       = NewError(Grammar, "invalid token")
	ErrBadEscape          = NewError(Grammar, "bad escape character")
	ErrBadUnicodeEscape   = NewError(Grammar, "bad unicode escape")
	ErrBadNumber          = NewError(Grammar, "malformed number")
	ErrBadStringChar      = NewError(Grammar, "unescaped control character in string")
	ErrBadStatusLine      = NewError(Grammar, "malformed status line")
	ErrBadHeader          = NewError(Grammar, "malformed header line")
	ErrBadLineEnding      = NewError(Grammar, "malformed line ending")
	ErrBadContentLength   = NewError(Grammar, "malformed content-length")
	ErrBadChunk           = NewError(Grammar, "malformed chunk-encoded data")
	ErrTokenTooLong       = NewError(ResourceLimit, "token is too long")
	ErrLineTooLong        = NewError(ResourceLimit, "line too long")
	ErrChunkTooLong       = NewError(ResourceLimit, "chunk length literal is too long")
	ErrNonObjectRoot      = NewError(Unsupported, "document root must be an object")
	ErrSurrogateEscape    = NewError(Unsupported, "surrogate pair escapes are not supported")
	ErrChunkExtension     = NewError(Unsupported, "chunk extensions are not supported")
	ErrUnsupportedCoding  = NewError(Unsupported, "transfer encoding is not supported")
	ErrParserClosed       = NewError(ProtocolState, "parser is closed")
	ErrUnexpectedEOF      = NewError(ProtocolState, "connection closed prematurely")
	ErrIncompleteDocument = NewError(ProtocolState, "incomplete document")
)
