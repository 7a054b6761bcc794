package restyutil

import (
	"fmt"
	"time"

	"nyc-rep-showtimes/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// one initial attempt plus two retries, per the fetch contract
const defaultRetryCount = 2

var transientStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

type ClientOptions struct {
	UserAgent string
	// sent only when non-empty; Film Forum wants an explicit Accept
	Accept string
	// defaults to 30s
	Timeout time.Duration
	// the otel tracer name used for request spans
	TracerName string
}

// NewScraperClient builds the resty client every scraper uses: fixed
// identity headers, a hard timeout, and a bounded retry budget with
// exponential backoff on transient statuses and transport errors.
// non-retryable statuses surface immediately as a *FetchError from the
// scraper's Fetch.
func NewScraperClient(opts ClientOptions) *resty.Client {
	client := resty.New()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("User-Agent", opts.UserAgent)
	if opts.Accept != "" {
		client.SetHeader("Accept", opts.Accept)
	}

	client.SetRetryCount(defaultRetryCount)
	client.SetRetryWaitTime(time.Second)
	client.SetRetryMaxWaitTime(time.Second * 10)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			// connection/read timeouts count against the same budget
			return true
		}
		return transientStatuses[res.StatusCode()]
	})

	tracerName := opts.TracerName
	if tracerName == "" {
		tracerName = "restyutil"
	}
	telemetry.InstrumentResty(client, tracerName)

	return client
}

// FetchError is a network or HTTP failure that survived the retry
// budget.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
