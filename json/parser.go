// Package json implements an incremental, push-based JSON document parser.
// The caller feeds byte chunks of arbitrary size and receives structural and
// scalar events synchronously; between calls the parser keeps only the
// currently open token and the container path, never the document.
package json

import (
	"fmt"

	"github.com/indigo-web/trickle/config"
	"github.com/indigo-web/trickle/status"
)

// Container discriminates the two JSON container kinds.
type Container uint8

const (
	Object Container = iota + 1
	Array
)

func (c Container) String() string {
	if c == Array {
		return "array"
	}

	return "object"
}

// Handler receives document events. A non-nil error from any method aborts
// the parse and is returned from Parse as-is. Path, Segment and Value
// arguments are valid only for the duration of the call; copy whatever must
// be retained.
type Handler interface {
	// BeginElement reports an opening container. The path already includes
	// the container's own key, which is also passed separately.
	BeginElement(path Path, key Segment, kind Container) error
	// Element reports a scalar. The path is transiently extended with the
	// scalar's key for the duration of the call.
	Element(path Path, key Segment, value Value) error
	// EndElement reports a closing container, with the same path its
	// BeginElement received.
	EndElement(path Path) error
	// Done fires exactly once, after the root object has been closed.
	Done()
}

type frame struct {
	kind Container
	// index is the 1-based position of the last delivered array element.
	index int
}

// Parser is a single-document parser. A Parser must not be reused: once Done
// or an error is reached it rejects all further input, and a new document
// needs a new Parser.
//
// Parser is not safe for concurrent use.
type Parser struct {
	handler Handler
	tok     tokenizer
	state   parserState
	stack   []frame
	path    Path
	key     Segment
	err     error
}

// NewParser constructs a parser delivering events to handler. The handler
// reference is released as soon as a terminal state is reached, so objects
// captured by it can be reclaimed without waiting for the Parser itself.
func NewParser(cfg *config.Config, handler Handler) *Parser {
	return &Parser{
		handler: handler,
		tok:     newTokenizer(cfg.JSON),
		state:   eIdle,
		stack:   make([]frame, 0, cfg.JSON.PathPrealloc),
		path:    append(make(Path, 0, cfg.JSON.PathPrealloc+1), Segment{}),
	}
}

// Parse consumes the next chunk of the document. Chunk boundaries are
// arbitrary: the produced event sequence depends only on the concatenated
// input. Bytes trailing the document's closing brace within the same chunk
// are ignored; further calls after that fail with status.ErrParserClosed.
func (p *Parser) Parse(data []byte) error {
	switch p.state {
	case eDone, eError:
		return status.ErrParserClosed
	}

	for i := 0; i < len(data); {
		tok, consumed, err := p.tok.next(data[i])
		if err != nil {
			return p.fail(err)
		}

		if consumed {
			i++
		}

		if tok.kind == tokNone {
			continue
		}

		if err = p.feed(tok); err != nil {
			return p.fail(err)
		}

		if p.state == eDone {
			break
		}
	}

	return nil
}

// Finish validates that the document was complete. Calling it on an already
// terminal parser is a no-op reflecting the prior outcome; no callbacks are
// redelivered.
func (p *Parser) Finish() error {
	switch p.state {
	case eDone:
		return nil
	case eError:
		return p.err
	default:
		return p.fail(status.ErrIncompleteDocument)
	}
}

func (p *Parser) feed(tok token) error {
	switch p.state {
	case eIdle:
		if tok.kind != tokObjectOpen {
			return status.ErrNonObjectRoot
		}

		// the root marker at path[0] doubles as the root object's key
		return p.begin(Object, p.path[0])
	case eDictKey:
		switch tok.kind {
		case tokString:
			p.key = Key(string(tok.str))
			p.state = eDictColon
			return nil
		case tokObjectClose:
			return p.end()
		default:
			return p.mismatch("string key or '}'", tok)
		}
	case eDictColon:
		if tok.kind != tokColon {
			return p.mismatch("':'", tok)
		}

		p.state = eDictValue
		return nil
	case eDictValue:
		return p.value(tok, p.key, false)
	case eArrayElement:
		if tok.kind == tokArrayClose {
			return p.end()
		}

		top := &p.stack[len(p.stack)-1]
		top.index++
		return p.value(tok, Index(top.index), true)
	case eDictComma:
		switch tok.kind {
		case tokComma:
			p.state = eDictKey
			return nil
		case tokObjectClose:
			return p.end()
		default:
			return p.mismatch("',' or '}'", tok)
		}
	case eArrayComma:
		switch tok.kind {
		case tokComma:
			p.state = eArrayElement
			return nil
		case tokArrayClose:
			return p.end()
		default:
			return p.mismatch("',' or ']'", tok)
		}
	default:
		panic("BUG: json parser: unknown state")
	}
}

func (p *Parser) value(tok token, key Segment, inArray bool) error {
	switch tok.kind {
	case tokObjectOpen:
		p.path = append(p.path, key)
		return p.begin(Object, key)
	case tokArrayOpen:
		p.path = append(p.path, key)
		return p.begin(Array, key)
	case tokString:
		return p.scalar(key, Value{
			Kind:      ValueString,
			Str:       tok.str,
			Truncated: tok.truncated,
		}, inArray)
	case tokNumber:
		return p.scalar(key, Value{Kind: ValueNumber, Num: tok.num}, inArray)
	case tokTrue:
		return p.scalar(key, Value{Kind: ValueBool, Bool: true}, inArray)
	case tokFalse:
		return p.scalar(key, Value{Kind: ValueBool}, inArray)
	case tokNull:
		return p.scalar(key, Value{Kind: ValueNull}, inArray)
	default:
		return p.mismatch("a value", tok)
	}
}

func (p *Parser) begin(kind Container, key Segment) error {
	p.stack = append(p.stack, frame{kind: kind})

	if err := p.handler.BeginElement(p.path, key, kind); err != nil {
		return err
	}

	if kind == Object {
		p.state = eDictKey
	} else {
		p.state = eArrayElement
	}

	return nil
}

// scalar extends the path with the element's key for the duration of the
// callback only.
func (p *Parser) scalar(key Segment, value Value, inArray bool) error {
	p.path = append(p.path, key)
	err := p.handler.Element(p.path, key, value)
	p.path = p.path[:len(p.path)-1]
	if err != nil {
		return err
	}

	if inArray {
		p.state = eArrayComma
	} else {
		p.state = eDictComma
	}

	return nil
}

func (p *Parser) end() error {
	if len(p.stack) == 0 {
		panic("BUG: json parser: popping an empty container stack")
	}

	if err := p.handler.EndElement(p.path); err != nil {
		return err
	}

	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) == 0 {
		p.complete()
		return nil
	}

	p.path = p.path[:len(p.path)-1]

	if p.stack[len(p.stack)-1].kind == Array {
		p.state = eArrayComma
	} else {
		p.state = eDictComma
	}

	return nil
}

func (p *Parser) mismatch(want string, tok token) error {
	return status.NewError(status.Grammar, fmt.Sprintf(
		"expected %s, got %s", want, tok.kind,
	))
}

func (p *Parser) complete() {
	p.state = eDone
	handler := p.handler
	p.release()
	handler.Done()
}

func (p *Parser) fail(err error) error {
	p.err = err
	p.state = eError
	p.release()
	return err
}

// release drops the handler and all buffers, so anything captured by the
// callbacks does not outlive the parse.
func (p *Parser) release() {
	p.handler = nil
	p.stack = nil
	p.path = nil
	p.tok.release()
}
