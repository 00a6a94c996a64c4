// Package http1 implements an incremental, push-based HTTP/1.x response
// parser. The caller feeds byte chunks of arbitrary size and receives
// status, header and body events synchronously; between calls the parser
// buffers at most the currently open line.
package http1

import (
	"bytes"

	"github.com/indigo-web/trickle/config"
	"github.com/indigo-web/trickle/internal/grammar"
	"github.com/indigo-web/trickle/internal/strutil"
	"github.com/indigo-web/trickle/status"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Handler receives response events. A non-nil error from any method aborts
// the parse and is returned from Parse as-is. String and slice arguments
// alias parser-owned memory and are valid only for the duration of the call.
type Handler interface {
	// Status reports the parsed status line.
	Status(code int, phrase string) error
	// Header reports a single header. The name is folded to lowercase.
	Header(name, value string) error
	// Body reports the next decoded portion of the body. Transfer-coding
	// framing is already stripped.
	Body(chunk []byte) error
	// Done fires exactly once when the message is complete. leftover holds
	// the bytes of the final input chunk past the end of the message, e.g.
	// the beginning of a pipelined response.
	Done(leftover []byte)
}

// Parser is a single-response parser. Once Done or an error is reached it
// rejects all further input; a new response needs a new Parser.
//
// Parser is not safe for concurrent use.
type Parser struct {
	handler       Handler
	state         parserState
	line          lineReader
	chunked       chunkedDecoder
	contentLength int
	bytesLeft     int
	received      int
	isChunked     bool
	err           error
}

// NewParser constructs a parser delivering events to handler. The handler
// reference is released as soon as a terminal state is reached.
func NewParser(cfg *config.Config, handler Handler) *Parser {
	return &Parser{
		handler:       handler,
		state:         eStatusLine,
		line:          newLineReader(cfg.HTTP.MaxLineLength),
		chunked:       newChunkedDecoder(cfg.HTTP.BodyPassCap),
		contentLength: -1,
	}
}

// Parse consumes the next chunk of the response. Chunk boundaries are
// arbitrary: the produced event sequence depends only on the concatenated
// input.
func (p *Parser) Parse(data []byte) error {
	switch p.state {
	case eDone, eError:
		return status.ErrParserClosed
	}

	for {
		switch p.state {
		case eStatusLine, eHeader:
			line, rest, ok, err := p.line.next(data)
			if err != nil {
				return p.fail(err)
			}
			if !ok {
				return nil
			}

			data = rest

			if p.state == eStatusLine {
				err = p.statusLine(line)
			} else if len(line) == 0 {
				p.beginBody()
			} else {
				err = p.headerLine(line)
			}

			if err != nil {
				return p.fail(err)
			}
		case eBodyFixed:
			if p.bytesLeft == 0 {
				p.complete(data)
				return nil
			}

			if len(data) == 0 {
				return nil
			}

			n := min(p.bytesLeft, len(data))
			if err := p.handler.Body(data[:n]); err != nil {
				return p.fail(err)
			}

			p.received += n
			p.bytesLeft -= n
			data = data[n:]
		case eBodyIdentity:
			if len(data) > 0 {
				if err := p.handler.Body(data); err != nil {
					return p.fail(err)
				}

				p.received += len(data)
			}

			return nil
		case eBodyChunked:
			chunk, rest, done, err := p.chunked.next(data)
			if err != nil {
				return p.fail(err)
			}
			if done {
				p.complete(rest)
				return nil
			}
			if chunk == nil {
				return nil
			}

			if err = p.handler.Body(chunk); err != nil {
				return p.fail(err)
			}

			p.received += len(chunk)
			data = rest
		default:
			panic("BUG: response parser: unknown state")
		}
	}
}

// Received returns the number of body bytes delivered so far. Framing
// bytes, the status line and headers are not counted.
func (p *Parser) Received() int {
	return p.received
}

// Finish validates that the connection closed at a legitimate point: a
// fixed-length body must have been fully received and a chunked body must
// have seen its zero chunk, while an identity body of unknown length is
// complete at any point. Calling Finish on an already terminal parser is a
// no-op reflecting the prior outcome; no callbacks are redelivered.
func (p *Parser) Finish() error {
	switch p.state {
	case eDone:
		return nil
	case eError:
		return p.err
	case eBodyIdentity:
		p.complete(nil)
		return nil
	default:
		return p.fail(status.ErrUnexpectedEOF)
	}
}

func (p *Parser) statusLine(line []byte) error {
	const prefix = "HTTP/1."

	if len(line) < len(prefix)+2 || uf.B2S(line[:len(prefix)]) != prefix {
		return status.ErrBadStatusLine
	}

	switch line[len(prefix)] {
	case '0', '1':
	default:
		return status.ErrBadStatusLine
	}

	if line[len(prefix)+1] != ' ' {
		return status.ErrBadStatusLine
	}

	line = line[len(prefix)+2:]

	var code, digits int
	for ; digits < len(line) && grammar.IsDigit(line[digits]); digits++ {
		code = code*10 + int(line[digits]-'0')
	}

	if digits == 0 || digits > 9 {
		return status.ErrBadStatusLine
	}

	var phrase string
	switch {
	case digits == len(line):
	case line[digits] == ' ':
		phrase = uf.B2S(line[digits+1:])
	default:
		return status.ErrBadStatusLine
	}

	if err := p.handler.Status(code, phrase); err != nil {
		return err
	}

	p.state = eHeader
	return nil
}

func (p *Parser) headerLine(line []byte) error {
	colon := bytes.IndexByte(line, ':')
	if colon <= 0 {
		return status.ErrBadHeader
	}

	name := line[:colon]
	for i, char := range name {
		if !grammar.IsToken(char) {
			return status.ErrBadHeader
		}

		if char >= 'A' && char <= 'Z' {
			name[i] = char | 0x20
		}
	}

	value := strutil.RStripWS(strutil.LStripWS(uf.B2S(line[colon+1:])))

	switch uf.B2S(name) {
	case "content-length":
		if p.contentLength != -1 {
			return status.ErrBadContentLength
		}

		length, err := parseUint(value)
		if err != nil {
			return err
		}

		p.contentLength = length
	case "transfer-encoding":
		if !strcomp.EqualFold(value, "chunked") {
			return status.ErrUnsupportedCoding
		}

		p.isChunked = true
	}

	return p.handler.Header(uf.B2S(name), value)
}

// beginBody picks the body framing once the blank line ends the headers.
// Chunked transfer-coding wins over content-length; neither means an
// identity body terminated by connection close.
func (p *Parser) beginBody() {
	switch {
	case p.isChunked:
		p.state = eBodyChunked
	case p.contentLength >= 0:
		p.bytesLeft = p.contentLength
		p.state = eBodyFixed
	default:
		p.state = eBodyIdentity
	}
}

func (p *Parser) complete(leftover []byte) {
	p.state = eDone
	handler := p.handler
	p.release()
	handler.Done(leftover)
}

func (p *Parser) fail(err error) error {
	p.err = err
	p.state = eError
	p.release()
	return err
}

// release drops the handler and the line buffer, so anything captured by the
// callbacks does not outlive the parse.
func (p *Parser) release() {
	p.handler = nil
	p.line.release()
}
