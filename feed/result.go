package feed

import "github.com/ecbrates/ecbrates/ratedata"

// Result is the outcome of a successful Fetch: which feed kind was requested
// and the parsed, most-recent-first sequence of daily rate sets it yielded.
type Result struct {
	Kind Kind
	Days ratedata.Feed
}
