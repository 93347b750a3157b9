package hashgen

import "errors"

var ErrDigestUnavailable = errors.New("hashgen: digest algorithm unavailable")
