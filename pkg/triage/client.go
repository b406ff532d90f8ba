package triage

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Client is the interface for the Triage API: one method per remote
// operation. Each call performs a single network round trip (one per page
// for paginated results, one connection per stream) and blocks until it
// completes. A Client carries no internal synchronization; use one per
// logical flow or serialize calls.
type Client interface {
	// SubmitSampleFile submits a file for analysis. The reader is consumed
	// in full; binary content must be supplied as a byte stream.
	SubmitSampleFile(ctx context.Context, filename string, file io.Reader, interactive bool, profiles []ProfileSelection) (*Sample, error)

	// SubmitSampleURL submits a URL for analysis.
	SubmitSampleURL(ctx context.Context, url string, interactive bool, profiles []ProfileSelection) (*Sample, error)

	// SetSampleProfile assigns explicit profiles to an interactive
	// submission. Mutually exclusive with SetSampleProfileAutomatic.
	SetSampleProfile(ctx context.Context, sampleID string, profiles []ProfileSelection) error

	// SetSampleProfileAutomatic lets the server pick profiles, optionally
	// restricted to the given archive member paths.
	SetSampleProfileAutomatic(ctx context.Context, sampleID string, pick []string) error

	// OwnedSamples returns a paginator over the caller's samples.
	OwnedSamples(ctx context.Context, max int) *Paginator[Sample]

	// PublicSamples returns a paginator over public samples.
	PublicSamples(ctx context.Context, max int) *Paginator[Sample]

	// Search returns a paginator over samples matching the query.
	Search(ctx context.Context, query string, max int) *Paginator[Sample]

	// SampleByID fetches one sample.
	SampleByID(ctx context.Context, sampleID string) (*Sample, error)

	// DeleteSample removes a sample.
	DeleteSample(ctx context.Context, sampleID string) error

	// StaticReport fetches the static analysis report.
	StaticReport(ctx context.Context, sampleID string) (*StaticReport, error)

	// OverviewReport fetches the cross-task overview report.
	OverviewReport(ctx context.Context, sampleID string) (*OverviewReport, error)

	// TaskReport fetches the report of one task.
	TaskReport(ctx context.Context, sampleID, taskID string) (*TaskReport, error)

	// KernelReport streams the kernel log of one task. The caller must
	// close the returned stream on every exit path.
	KernelReport(ctx context.Context, sampleID, taskID string) (LogStream, error)

	// SampleTaskFile downloads a file produced by a task.
	SampleTaskFile(ctx context.Context, sampleID, taskID, filename string) ([]byte, error)

	// SampleArchiveTar downloads the sample archive as a tarball.
	SampleArchiveTar(ctx context.Context, sampleID string) ([]byte, error)

	// SampleArchiveZip downloads the sample archive as a zip file.
	SampleArchiveZip(ctx context.Context, sampleID string) ([]byte, error)

	// CreateProfile creates an analysis profile.
	CreateProfile(ctx context.Context, name string, tags []string, network NetworkType, timeout int) error

	// DeleteProfile removes a profile by name or ID.
	DeleteProfile(ctx context.Context, profileID string) error

	// Profiles returns a paginator over the caller's profiles.
	Profiles(ctx context.Context, max int) *Paginator[Profile]

	// SampleEvents streams status events of a running sample. The caller
	// must close the returned stream on every exit path.
	SampleEvents(ctx context.Context, sampleID string) (EventStream, error)
}

// EventStream is a lazy sequence of sample status events, one JSON line per
// event, terminated by a blank line. It is restartable only by re-issuing
// the underlying request.
type EventStream interface {
	// Next decodes the next event. It returns ErrEndOfStream at the blank
	// line terminator; a malformed line is fatal for the whole stream.
	Next() (*SampleEvent, error)

	// Close releases the underlying connection.
	Close() error
}

// LogStream is a lazy sequence of raw kernel log entries with the same
// line-delimited framing as EventStream.
type LogStream interface {
	Next() ([]byte, error)
	Close() error
}

// Logger receives debug output from the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config configures a client. Token is required; everything else has a
// working default.
type Config struct {
	// Token is the API bearer token sent on every request.
	Token string

	// RootURL is the API endpoint; trailing slashes are stripped once at
	// construction. Defaults to the public Triage instance.
	RootURL string

	// UserAgent overrides the default client identification header.
	UserAgent string

	// Logger receives transport debug output when Debug is set.
	Logger Logger

	// Debug enables request/response logging.
	Debug bool

	// HTTPClient overrides the underlying HTTP client. Timeouts are
	// inherited from it; the client layer adds none of its own.
	HTTPClient *http.Client

	// RetryMax enables transport retries when positive. The default is
	// zero: exactly one attempt per call.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}
