package http1

import (
	"github.com/indigo-web/trickle/internal/hexconv"
	"github.com/indigo-web/trickle/status"
)

// maxChunkLengthDigits caps a single chunk length at 4GiB, which is
// supposedly enough.
const maxChunkLengthDigits = 8

// chunkedDecoder decodes chunked transfer-coding. Chunk extensions and
// trailer fields are not supported: an extension fails the parse, and the
// message ends right after the zero chunk's CRLF.
type chunkedDecoder struct {
	state        chunkedState
	lengthDigits uint8
	chunkLength  uint64
	passCap      uint64
}

func newChunkedDecoder(passCap int) chunkedDecoder {
	return chunkedDecoder{
		state:   eChunkLength,
		passCap: uint64(passCap),
	}
}

// next consumes data until a slice of chunk body is ready or the input is
// exhausted. chunk is nil when more input is needed; done reports that the
// terminating zero chunk was consumed, with rest carrying the leftover.
func (c *chunkedDecoder) next(data []byte) (chunk, rest []byte, done bool, err error) {
	for i := 0; i < len(data); i++ {
		switch c.state {
		case eChunkLength:
			switch char := data[i]; char {
			case '\r':
				if c.lengthDigits == 0 {
					return nil, nil, false, status.ErrBadChunk
				}

				c.state = eChunkLengthCR
			case ';':
				return nil, nil, false, status.ErrChunkExtension
			default:
				value := hexconv.Halfbyte[char]
				if value == 0xFF {
					return nil, nil, false, status.ErrBadChunk
				}

				c.chunkLength = c.chunkLength<<4 | uint64(value)
				if c.lengthDigits++; c.lengthDigits > maxChunkLengthDigits {
					return nil, nil, false, status.ErrChunkTooLong
				}
			}
		case eChunkLengthCR:
			if data[i] != '\n' {
				return nil, nil, false, status.ErrBadChunk
			}

			if c.chunkLength == 0 {
				c.state = eFinalCR
			} else {
				c.state = eChunkBody
			}
		case eChunkBody:
			n := min(c.chunkLength, uint64(len(data)-i), c.passCap)
			c.chunkLength -= n
			if c.chunkLength == 0 {
				c.state = eChunkBodyEnd
			}

			return data[i : i+int(n)], data[i+int(n):], false, nil
		case eChunkBodyEnd:
			if data[i] != '\r' {
				return nil, nil, false, status.ErrBadChunk
			}

			c.state = eChunkBodyCR
		case eChunkBodyCR:
			if data[i] != '\n' {
				return nil, nil, false, status.ErrBadChunk
			}

			c.lengthDigits = 0
			c.state = eChunkLength
		case eFinalCR:
			if data[i] != '\r' {
				return nil, nil, false, status.ErrBadChunk
			}

			c.state = eFinalCRLF
		case eFinalCRLF:
			if data[i] != '\n' {
				return nil, nil, false, status.ErrBadChunk
			}

			return nil, data[i+1:], true, nil
		default:
			panic("BUG: chunked decoder: unknown state")
		}
	}

	return nil, nil, false, nil
}
