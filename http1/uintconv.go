package http1

import "github.com/indigo-web/trickle/status"

// parseUint is a tiny strconv.Atoi for header values, rejecting signs,
// spaces and any other decoration.
func parseUint(raw string) (num int, err error) {
	if len(raw) == 0 {
		return 0, status.ErrBadContentLength
	}

	for i := 0; i < len(raw); i++ {
		char := raw[i] - '0'
		if char > 9 {
			return 0, status.ErrBadContentLength
		}

		num = num*10 + int(char)
		if num < 0 {
			return 0, status.ErrBadContentLength
		}
	}

	return num, nil
}
