package json

import (
	"math"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/trickle/config"
	"github.com/indigo-web/trickle/status"
	"github.com/stretchr/testify/require"
)

func tokenize(cfg *config.Config, input string) (toks []token, err error) {
	tok := newTokenizer(cfg.JSON)

	for i := 0; i < len(input); {
		tk, consumed, err := tok.next(input[i])
		if err != nil {
			return toks, err
		}

		if consumed {
			i++
		}

		if tk.kind != tokNone {
			tk.str = append([]byte(nil), tk.str...)
			toks = append(toks, tk)
		}
	}

	return toks, nil
}

func tokenizeOne(t *testing.T, input string) token {
	toks, err := tokenize(config.Default(), input)
	require.NoError(t, err)
	require.Len(t, toks, 1)

	return toks[0]
}

func TestNumbers(t *testing.T) {
	samples := map[string]float64{
		"0":         0,
		"-0":        0,
		"42":        42,
		"-17.5":     -17.5,
		"0.123":     0.123,
		"0.123e-5":  0.123e-5,
		"0.123e+5":  0.123e+5,
		"1E3":       1000,
		"987654321": 987654321,
	}

	for sample, want := range samples {
		t.Run(sample, func(t *testing.T) {
			// the trailing space terminates the token
			tok := tokenizeOne(t, sample+" ")
			require.Equal(t, tokNumber, tok.kind)
			require.Equal(t, want, tok.num)
		})
	}

	t.Run("negative zero keeps the sign", func(t *testing.T) {
		tok := tokenizeOne(t, "-0 ")
		require.True(t, math.Signbit(tok.num))
	})

	for _, sample := range []string{
		"0123 ", "01 ", "1. ", "- ", "1e ", "1e+ ", "1.e5 ", "00 ",
	} {
		t.Run("malformed "+sample, func(t *testing.T) {
			_, err := tokenize(config.Default(), sample)
			require.EqualError(t, err, status.ErrBadNumber.Error())
		})
	}

	t.Run("terminated by a structural byte", func(t *testing.T) {
		toks, err := tokenize(config.Default(), "5}")
		require.NoError(t, err)
		require.Len(t, toks, 2)
		require.Equal(t, tokNumber, toks[0].kind)
		require.Equal(t, float64(5), toks[0].num)
		require.Equal(t, tokObjectClose, toks[1].kind)
	})

	t.Run("too long", func(t *testing.T) {
		cfg := config.Default()
		cfg.JSON.MaxTokenLength = 4
		_, err := tokenize(cfg, "123456 ")
		require.EqualError(t, err, status.ErrTokenTooLong.Error())
	})
}

func TestStrings(t *testing.T) {
	samples := map[string]string{
		`"hello"`:                  "hello",
		`""`:                       "",
		`"\"\\\/"`:                 `"\/`,
		`"\b\f\n\r\t"`:             "\b\f\n\r\t",
		`"\u0041"`:            "A",
		`"\u23f0"`:            "⏰",
		`"\u00e9"`:            "é",
		`"raw ⏰ bytes"`:            "raw ⏰ bytes",
		`"mixed World\n"`:     "mixed World\n",
	}

	for sample, want := range samples {
		t.Run(sample, func(t *testing.T) {
			tok := tokenizeOne(t, sample)
			require.Equal(t, tokString, tok.kind)
			require.Equal(t, want, string(tok.str))
			require.False(t, tok.truncated)
		})
	}

	t.Run("unicode escape is three bytes at most", func(t *testing.T) {
		tok := tokenizeOne(t, `"\u23f0"`)
		require.Equal(t, []byte{0xE2, 0x8F, 0xB0}, tok.str)
	})

	failures := map[string]error{
		`"\x"`:     status.ErrBadEscape,
		`"\u12g4"`: status.ErrBadUnicodeEscape,
		`"\ud800"`: status.ErrSurrogateEscape,
		`"\udfff"`: status.ErrSurrogateEscape,
		"\"a\x01b\"": status.ErrBadStringChar,
		"\"a\nb\"":   status.ErrBadStringChar,
	}

	for sample, want := range failures {
		t.Run("malformed "+sample, func(t *testing.T) {
			_, err := tokenize(config.Default(), sample)
			require.EqualError(t, err, want.Error())
		})
	}
}

func TestStringTruncation(t *testing.T) {
	cfg := config.Default()
	cfg.JSON.MaxStringLength = 8
	payload := uniuri.NewLen(40)

	toks, err := tokenize(cfg, `"`+payload+`"`)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.True(t, toks[0].truncated)
	require.Equal(t, payload[:8], string(toks[0].str))
}

func TestStructural(t *testing.T) {
	toks, err := tokenize(config.Default(), " \t\r\n{ } [ ] , : ")
	require.NoError(t, err)

	kinds := make([]tokenKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.kind)
	}

	require.Equal(t, []tokenKind{
		tokObjectOpen, tokObjectClose, tokArrayOpen, tokArrayClose,
		tokComma, tokColon,
	}, kinds)
}

func TestConstants(t *testing.T) {
	for sample, want := range map[string]tokenKind{
		"true":  tokTrue,
		"false": tokFalse,
		"null":  tokNull,
	} {
		t.Run(sample, func(t *testing.T) {
			require.Equal(t, want, tokenizeOne(t, sample).kind)
		})
	}

	for _, sample := range []string{"tru!", "folse", "nil", "@"} {
		t.Run("malformed "+sample, func(t *testing.T) {
			_, err := tokenize(config.Default(), sample)
			require.EqualError(t, err, status.ErrInvalidToken.Error())
		})
	}

	t.Run("incomplete literal produces nothing", func(t *testing.T) {
		toks, err := tokenize(config.Default(), "nul")
		require.NoError(t, err)
		require.Empty(t, toks)
	})
}
