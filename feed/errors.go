package feed

import "errors"

// ErrFeed is the sentinel wrapped by every error Fetch returns, whether the
// failure originated in the HTTPClient or the Parser. Callers should use
// errors.Is(err, feed.ErrFeed) rather than inspecting the message.
var ErrFeed = errors.New("feed error")
