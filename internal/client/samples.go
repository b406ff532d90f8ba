package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/myrtus0x0/triage/internal/constants"
	internalhttp "github.com/myrtus0x0/triage/internal/http"
	"github.com/myrtus0x0/triage/pkg/triage"
)

// submissionPayload is the `_json` metadata of a file submission and the
// whole body of a URL submission. Interactive and Profiles are always
// serialized, matching server expectations.
type submissionPayload struct {
	Kind        triage.SampleKind         `json:"kind"`
	URL         string                    `json:"url,omitempty"`
	Interactive bool                      `json:"interactive"`
	Profiles    []triage.ProfileSelection `json:"profiles"`
}

// SubmitSampleFile submits a file for analysis. The multipart body carries
// the `_json` metadata field before the `file` field; this ordering is a
// protocol requirement.
func (c *Client) SubmitSampleFile(ctx context.Context, filename string, file io.Reader, interactive bool, profiles []triage.ProfileSelection) (*triage.Sample, error) {
	if profiles == nil {
		profiles = []triage.ProfileSelection{}
	}

	metadata, err := json.Marshal(submissionPayload{
		Kind:        triage.SampleKindFile,
		Interactive: interactive,
		Profiles:    profiles,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling submission metadata: %w", err)
	}

	body, contentType, err := internalhttp.EncodeMultipart([]internalhttp.FormField{
		{Name: "_json", Value: string(metadata)},
		{Name: "file", Filename: filename, Reader: file},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding submission body: %w", err)
	}

	resp, err := c.httpClient.PostRaw(ctx, constants.APIPathSamples, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("submitting sample file: %w", err)
	}

	var sample triage.Sample

	err = json.Unmarshal(resp.Body, &sample)
	if err != nil {
		return nil, fmt.Errorf("parsing sample response: %w", err)
	}

	return &sample, nil
}

// SubmitSampleURL submits a URL for analysis.
func (c *Client) SubmitSampleURL(ctx context.Context, target string, interactive bool, profiles []triage.ProfileSelection) (*triage.Sample, error) {
	if profiles == nil {
		profiles = []triage.ProfileSelection{}
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathSamples, submissionPayload{
		Kind:        triage.SampleKindURL,
		URL:         target,
		Interactive: interactive,
		Profiles:    profiles,
	})
	if err != nil {
		return nil, fmt.Errorf("submitting sample url: %w", err)
	}

	var sample triage.Sample

	err = json.Unmarshal(resp.Body, &sample)
	if err != nil {
		return nil, fmt.Errorf("parsing sample response: %w", err)
	}

	return &sample, nil
}

// OwnedSamples returns a paginator over the caller's samples.
func (c *Client) OwnedSamples(ctx context.Context, max int) *triage.Paginator[triage.Sample] {
	return triage.NewPaginator(ctx, pageFetcher[triage.Sample](c.httpClient), constants.APIPathSamples+"?subset=owned", max)
}

// PublicSamples returns a paginator over public samples.
func (c *Client) PublicSamples(ctx context.Context, max int) *triage.Paginator[triage.Sample] {
	return triage.NewPaginator(ctx, pageFetcher[triage.Sample](c.httpClient), constants.APIPathSamples+"?subset=public", max)
}

// Search returns a paginator over samples matching the query.
func (c *Client) Search(ctx context.Context, query string, max int) *triage.Paginator[triage.Sample] {
	path := constants.APIPathSearch + "?query=" + url.QueryEscape(query)

	return triage.NewPaginator(ctx, pageFetcher[triage.Sample](c.httpClient), path, max)
}

// SampleByID fetches one sample.
func (c *Client) SampleByID(ctx context.Context, sampleID string) (*triage.Sample, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathSamples+"/"+sampleID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting sample: %w", err)
	}

	var sample triage.Sample

	err = json.Unmarshal(resp.Body, &sample)
	if err != nil {
		return nil, fmt.Errorf("parsing sample response: %w", err)
	}

	return &sample, nil
}

// DeleteSample removes a sample.
func (c *Client) DeleteSample(ctx context.Context, sampleID string) error {
	_, err := c.httpClient.Delete(ctx, constants.APIPathSamples+"/"+sampleID)
	if err != nil {
		return fmt.Errorf("deleting sample: %w", err)
	}

	return nil
}

// StaticReport fetches the static analysis report.
func (c *Client) StaticReport(ctx context.Context, sampleID string) (*triage.StaticReport, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathSamples+"/"+sampleID+"/reports/static", nil)
	if err != nil {
		return nil, fmt.Errorf("getting static report: %w", err)
	}

	var report triage.StaticReport

	err = json.Unmarshal(resp.Body, &report)
	if err != nil {
		return nil, fmt.Errorf("parsing static report: %w", err)
	}

	return &report, nil
}

// OverviewReport fetches the cross-task overview report.
func (c *Client) OverviewReport(ctx context.Context, sampleID string) (*triage.OverviewReport, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/samples/"+sampleID+"/overview.json", nil)
	if err != nil {
		return nil, fmt.Errorf("getting overview report: %w", err)
	}

	var report triage.OverviewReport

	err = json.Unmarshal(resp.Body, &report)
	if err != nil {
		return nil, fmt.Errorf("parsing overview report: %w", err)
	}

	return &report, nil
}

// TaskReport fetches the report of one task.
func (c *Client) TaskReport(ctx context.Context, sampleID, taskID string) (*triage.TaskReport, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("%s/%s/%s/report_triage.json", constants.APIPathSamples, sampleID, taskID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting task report: %w", err)
	}

	var report triage.TaskReport

	err = json.Unmarshal(resp.Body, &report)
	if err != nil {
		return nil, fmt.Errorf("parsing task report: %w", err)
	}

	return &report, nil
}

// KernelReport locates the task in the overview report, routes to the
// platform's kernel log endpoint, and streams its entries. No log request
// is issued for unknown tasks or unsupported platforms.
func (c *Client) KernelReport(ctx context.Context, sampleID, taskID string) (triage.LogStream, error) {
	overview, err := c.OverviewReport(ctx, sampleID)
	if err != nil {
		return nil, err
	}

	var task *triage.TaskOverview

	for i := range overview.Tasks {
		if overview.Tasks[i].Name == taskID {
			task = &overview.Tasks[i]

			break
		}
	}

	if task == nil {
		return nil, fmt.Errorf("%w: %s", triage.ErrTaskNotFound, taskID)
	}

	var logName string

	switch {
	case strings.Contains(task.Platform, "windows"):
		logName = "onemon.json"
	case strings.Contains(task.Platform, "linux"):
		logName = "stahp.json"
	default:
		return nil, fmt.Errorf("%w: %q", triage.ErrUnsupportedPlatform, task.Platform)
	}

	body, err := c.httpClient.GetStream(ctx, fmt.Sprintf("%s/%s/%s/logs/%s", constants.APIPathSamples, sampleID, taskID, logName))
	if err != nil {
		return nil, fmt.Errorf("streaming kernel log: %w", err)
	}

	return newLogStream(body), nil
}

// SampleTaskFile downloads a file produced by a task.
func (c *Client) SampleTaskFile(ctx context.Context, sampleID, taskID, filename string) ([]byte, error) {
	resp, err := c.httpClient.GetRaw(ctx, fmt.Sprintf("%s/%s/%s/%s", constants.APIPathSamples, sampleID, taskID, filename))
	if err != nil {
		return nil, fmt.Errorf("downloading task file: %w", err)
	}

	return resp.Body, nil
}

// SampleArchiveTar downloads the sample archive as a tarball.
func (c *Client) SampleArchiveTar(ctx context.Context, sampleID string) ([]byte, error) {
	resp, err := c.httpClient.GetRaw(ctx, constants.APIPathSamples+"/"+sampleID+"/archive")
	if err != nil {
		return nil, fmt.Errorf("downloading sample archive: %w", err)
	}

	return resp.Body, nil
}

// SampleArchiveZip downloads the sample archive as a zip file.
func (c *Client) SampleArchiveZip(ctx context.Context, sampleID string) ([]byte, error) {
	resp, err := c.httpClient.GetRaw(ctx, constants.APIPathSamples+"/"+sampleID+"/archive.zip")
	if err != nil {
		return nil, fmt.Errorf("downloading sample archive: %w", err)
	}

	return resp.Body, nil
}

// SampleEvents streams status events of a running sample.
func (c *Client) SampleEvents(ctx context.Context, sampleID string) (triage.EventStream, error) {
	body, err := c.httpClient.GetStream(ctx, constants.APIPathSamples+"/"+sampleID+"/events")
	if err != nil {
		return nil, fmt.Errorf("streaming sample events: %w", err)
	}

	return newEventStream(body), nil
}

// pageFetcher adapts the transport into the paginator's page function.
func pageFetcher[T any](httpClient *internalhttp.Client) triage.PageFunc[T] {
	return func(ctx context.Context, path string) (*triage.ListResponse[T], error) {
		resp, err := httpClient.Get(ctx, path, nil)
		if err != nil {
			return nil, fmt.Errorf("fetching page: %w", err)
		}

		var page triage.ListResponse[T]

		err = json.Unmarshal(resp.Body, &page)
		if err != nil {
			return nil, fmt.Errorf("parsing page response: %w", err)
		}

		return &page, nil
	}
}
