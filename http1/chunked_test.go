package http1

import (
	"io"
	"strings"
	"testing"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/trickle/status"
	"github.com/stretchr/testify/require"
)

// decode drives the decoder over the whole input, concatenating the body and
// returning the leftover past the zero chunk.
func decode(passCap int, data []byte) (body, leftover []byte, err error) {
	dec := newChunkedDecoder(passCap)

	for len(data) > 0 {
		chunk, rest, done, err := dec.next(data)
		if err != nil {
			return body, nil, err
		}
		if done {
			return body, rest, nil
		}
		if chunk == nil {
			break
		}

		body = append(body, chunk...)
		data = rest
	}

	return body, nil, io.ErrUnexpectedEOF
}

func TestChunkedDecoder(t *testing.T) {
	t.Run("single chunk", func(t *testing.T) {
		body, leftover, err := decode(512, []byte("5\r\nhello\r\n0\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "hello", string(body))
		require.Empty(t, leftover)
	})

	t.Run("leftover past the zero chunk", func(t *testing.T) {
		body, leftover, err := decode(512, []byte("5\r\nhello\r\n0\r\n\r\nEXTRA"))
		require.NoError(t, err)
		require.Equal(t, "hello", string(body))
		require.Equal(t, "EXTRA", string(leftover))
	})

	t.Run("multiple chunks with padded lengths", func(t *testing.T) {
		body, _, err := decode(512, []byte("3\r\nfoo\r\n0000d\r\nHello, world!\r\n0\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "fooHello, world!", string(body))
	})

	t.Run("pass cap bounds the slice size", func(t *testing.T) {
		dec := newChunkedDecoder(2)
		data := []byte("6\r\nabcdef\r\n0\r\n\r\n")

		var body []byte
		for {
			chunk, rest, done, err := dec.next(data)
			require.NoError(t, err)
			if done {
				break
			}
			if chunk != nil {
				require.LessOrEqual(t, len(chunk), 2)
				body = append(body, chunk...)
			}
			data = rest
		}

		require.Equal(t, "abcdef", string(body))
	})
}

func TestChunkedDecoderScatter(t *testing.T) {
	const stream = "3\r\nfoo\r\na\r\n0123456789\r\n0\r\n\r\ntrailing"

	for size := 1; size <= len(stream); size++ {
		dec := newChunkedDecoder(512)
		var body, leftover []byte
		var done bool

		for _, part := range scatter([]byte(stream), size) {
			data := part
			for !done {
				chunk, rest, d, err := dec.next(data)
				require.NoError(t, err, "chunk size %d", size)
				done = d
				if done {
					leftover = append(leftover, rest...)
					break
				}
				if chunk == nil {
					break
				}

				body = append(body, chunk...)
				data = rest
			}
		}

		require.True(t, done, "chunk size %d", size)
		require.Equal(t, "foo0123456789", string(body), "chunk size %d", size)
		require.Equal(t, "trailing", string(leftover), "chunk size %d", size)
	}
}

func TestChunkedDecoderMalformed(t *testing.T) {
	samples := map[string]error{
		"5\nhello":             status.ErrBadChunk,
		"\r\n":                 status.ErrBadChunk,
		"zz\r\n":               status.ErrBadChunk,
		"5\r\nhelloXX":         status.ErrBadChunk,
		"5\r\nhello\rX":        status.ErrBadChunk,
		"0\r\nX":               status.ErrBadChunk,
		"0\r\n\rX":             status.ErrBadChunk,
		"5;ext=1\r\nhello\r\n": status.ErrChunkExtension,
		"123456789\r\n":        status.ErrChunkTooLong,
	}

	for sample, want := range samples {
		t.Run(strings.ReplaceAll(sample, "\r\n", "<CRLF>"), func(t *testing.T) {
			_, _, err := decode(512, []byte(sample))
			require.EqualError(t, err, want.Error())
		})
	}
}

func TestChunkedDecoderAgainstReference(t *testing.T) {
	streams := []string{
		"5\r\nhello\r\n0\r\n\r\n",
		"3\r\nfoo\r\n3\r\nbar\r\n0\r\n\r\n",
		"1\r\nx\r\nA\r\n0123456789\r\n0\r\n\r\nleftover",
		"0\r\n\r\n",
	}

	for _, stream := range streams {
		t.Run(strings.ReplaceAll(stream, "\r\n", "<CRLF>"), func(t *testing.T) {
			body, leftover, err := decode(512, []byte(stream))
			require.NoError(t, err)

			ref := chunkedbody.NewParser(chunkedbody.DefaultSettings())
			var refBody, refLeftover []byte
			data := []byte(stream)

			for {
				chunk, extra, err := ref.Parse(data, false)
				if err == io.EOF {
					refLeftover = extra
					break
				}

				require.NoError(t, err)
				refBody = append(refBody, chunk...)
				data = extra
			}

			require.Equal(t, string(refBody), string(body))
			require.Equal(t, string(refLeftover), string(leftover))
		})
	}
}
