package http1

import (
	"bytes"

	"github.com/indigo-web/trickle/status"
	"github.com/indigo-web/utils/buffer"
)

// lineReader splits the byte stream into CRLF-terminated lines, resumable at
// any byte boundary. Line endings are strict: a bare LF, or anything but LF
// right after CR, is a grammar failure.
type lineReader struct {
	state   lineState
	buff    *buffer.Buffer[byte]
	pending bool
}

func newLineReader(maxLineLength int) lineReader {
	return lineReader{
		state: eLineChars,
		buff:  buffer.NewBuffer[byte](0, maxLineLength),
	}
}

// next accumulates data until a complete line is available. ok reports
// completion; the returned line excludes the CRLF and stays valid until the
// following call.
func (r *lineReader) next(data []byte) (line, rest []byte, ok bool, err error) {
	if r.pending {
		r.buff.Clear()
		r.pending = false
	}

	if r.state == eLineChars {
		cr := bytes.IndexByte(data, '\r')
		segment := data
		if cr != -1 {
			segment = data[:cr]
		}

		if bytes.IndexByte(segment, '\n') != -1 {
			return nil, nil, false, status.ErrBadLineEnding
		}

		if !r.buff.Append(segment...) {
			return nil, nil, false, status.ErrLineTooLong
		}

		if cr == -1 {
			return nil, nil, false, nil
		}

		data = data[cr+1:]
		r.state = eLineCR
	}

	if len(data) == 0 {
		return nil, nil, false, nil
	}

	if data[0] != '\n' {
		return nil, nil, false, status.ErrBadLineEnding
	}

	r.state = eLineChars
	r.pending = true

	return r.buff.Finish(), data[1:], true, nil
}

func (r *lineReader) release() {
	r.buff = nil
}
