// Package feed orchestrates retrieval and parsing of the three ECB reference
// rate XML endpoints. It delegates the actual byte transfer to an HTTPClient
// and the XML decoding to a Parser, normalizing failures from either stage
// into errors wrapping ErrFeed. No retry policy lives here - see the fetcher
// package.
package feed

import (
	"context"
	"fmt"
)

// Kind identifies one of the three ECB feeds. It is a closed set: the zero
// value is not a valid Kind, and there is no exported constructor other than
// the three constants below.
type Kind int

const (
	// Latest is today's rates (a feed of length one).
	Latest Kind = iota + 1
	// NinetyDays is the last-90-days feed.
	NinetyDays
	// Historic is the full history since 1999-01-04.
	Historic
)

func (k Kind) String() string {
	switch k {
	case Latest:
		return "latest"
	case NinetyDays:
		return "ninety_days"
	case Historic:
		return "historic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// path is the fixed ECB path for each feed kind.
func (k Kind) path() (string, error) {
	switch k {
	case Latest:
		return "/eurofxref-daily.xml", nil
	case NinetyDays:
		return "/eurofxref-hist-90d.xml", nil
	case Historic:
		return "/eurofxref-hist.xml", nil
	default:
		return "", fmt.Errorf("feed: %w: unknown kind %d", ErrFeed, int(k))
	}
}

// BaseURL is the fixed ECB statistics base URL. It is a var, not a const,
// solely so tests can point the orchestrator at a local fixture server.
var BaseURL = "https://www.ecb.europa.eu/stats/eurofxref"

// Orchestrator ties together an HTTPClient and a Parser to satisfy Fetch
// requests for any Kind.
type Orchestrator struct {
	Client HTTPClient
	Parser Parser
	// Base overrides BaseURL for this orchestrator only, mainly for tests.
	Base string
}

// New builds an Orchestrator using the default net/http client and the
// default encoding/xml parser.
func New() *Orchestrator {
	return &Orchestrator{Client: NewDefaultHTTPClient(), Parser: DefaultParser{}}
}

func (o *Orchestrator) baseURL() string {
	if o.Base != "" {
		return o.Base
	}
	return BaseURL
}

// Fetch retrieves and parses the requested feed kind.
func (o *Orchestrator) Fetch(ctx context.Context, kind Kind) (Result, error) {
	p, err := kind.path()
	if err != nil {
		return Result{}, err
	}

	body, err := o.Client.Get(ctx, o.baseURL()+p, kind == Historic)
	if err != nil {
		return Result{}, fmt.Errorf("feed: %w: fetching %s: %v", ErrFeed, kind, err)
	}

	days, err := o.Parser.Parse(body)
	if err != nil {
		return Result{}, fmt.Errorf("feed: %w: parsing %s: %v", ErrFeed, kind, err)
	}

	return Result{Kind: kind, Days: days}, nil
}
