package config

type (
	JSON struct {
		// MaxStringLength limits decoded string values. Longer values are
		// delivered capped at the limit with the Truncated flag set. This is
		// the only soft limit in the library: everything else fails hard.
		MaxStringLength int
		// MaxTokenLength limits number tokens. Unlike strings, numbers must
		// be exact, so exceeding the limit aborts the parse.
		MaxTokenLength int
		// PathPrealloc is the number of preallocated path segments. Documents
		// nested deeper still parse, at the cost of a reallocation.
		PathPrealloc int
	}

	HTTP struct {
		// MaxLineLength limits the status line and every header line,
		// guarding against unbounded buffering on pathological input.
		MaxLineLength int
		// BodyPassCap caps the length of a single Body callback invocation
		// while draining chunked bodies, thereby bounding temporary slices.
		// Any positive value is correct, this is purely a tuning knob.
		BodyPassCap int
	}
)

// Config holds restrictions and pre-allocations used by both parsers.
//
// Always modify defaults (returned via Default()) instead of constructing
// the struct manually, otherwise zero limits will reject everything.
type Config struct {
	JSON JSON
	HTTP HTTP
}

// Default returns the default config. The limits are balanced for
// kilobyte-scale heaps yet permissive enough for ordinary documents
// and responses.
func Default() *Config {
	return &Config{
		JSON: JSON{
			MaxStringLength: 1024,
			MaxTokenLength:  64,
			PathPrealloc:    8,
		},
		HTTP: HTTP{
			MaxLineLength: 256,
			BodyPassCap:   512,
		},
	}
}
