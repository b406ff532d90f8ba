package triage

import (
	"encoding/json"
	"time"
)

// SampleStatus is the server-side lifecycle state of a sample.
type SampleStatus string

const (
	SampleStatusPending        SampleStatus = "pending"
	SampleStatusStaticAnalysis SampleStatus = "static_analysis"
	SampleStatusSchedule       SampleStatus = "scheduled"
	SampleStatusRunning        SampleStatus = "running"
	SampleStatusProcessing     SampleStatus = "processing"
	SampleStatusFailed         SampleStatus = "failed"
	SampleStatusReported       SampleStatus = "reported"
)

// SampleKind distinguishes file submissions from URL submissions.
type SampleKind string

const (
	SampleKindFile SampleKind = "file"
	SampleKindURL  SampleKind = "url"
)

// NetworkType is the network mode of an analysis profile.
type NetworkType string

const (
	NetworkInternet NetworkType = "internet"
	NetworkDrop     NetworkType = "drop"
	NetworkUnset    NetworkType = ""
)

// Sample represents a submitted file or URL tracked by the service.
// Filename is set for file submissions, URL for url submissions.
type Sample struct {
	ID        string        `json:"id"                 yaml:"id"`
	Status    SampleStatus  `json:"status"             yaml:"status"`
	Kind      SampleKind    `json:"kind"               yaml:"kind"`
	Filename  string        `json:"filename,omitempty" yaml:"filename,omitempty"`
	URL       string        `json:"url,omitempty"      yaml:"url,omitempty"`
	Private   bool          `json:"private"            yaml:"private"`
	Tasks     []TaskSummary `json:"tasks,omitempty"    yaml:"tasks,omitempty"`
	Submitted time.Time     `json:"submitted"          yaml:"submitted"`
	Completed *time.Time    `json:"completed,omitempty" yaml:"completed,omitempty"`
}

// TaskSummary is the per-task status entry embedded in a sample.
type TaskSummary struct {
	ID     string `json:"id"     yaml:"id"`
	Status string `json:"status" yaml:"status"`
}

// ProfileSelection assigns a profile to one submission target. Pick is the
// relative path of an archive member and may be empty for plain files.
type ProfileSelection struct {
	Profile string `json:"profile"        yaml:"profile"`
	Pick    string `json:"pick,omitempty" yaml:"pick,omitempty"`
}

// Profile is a named analysis configuration.
type Profile struct {
	ID      string      `json:"id"      yaml:"id"`
	Name    string      `json:"name"    yaml:"name"`
	Tags    []string    `json:"tags"    yaml:"tags"`
	Network NetworkType `json:"network" yaml:"network"`
	Timeout int         `json:"timeout" yaml:"timeout"`
}

// SampleEvent is one status update on a sample's event stream. The server
// emits events in temporal order; consumers must not reorder them.
type SampleEvent struct {
	ID        string       `json:"id,omitempty"        yaml:"id,omitempty"`
	Status    SampleStatus `json:"status"              yaml:"status"`
	Kind      SampleKind   `json:"kind,omitempty"      yaml:"kind,omitempty"`
	Filename  string       `json:"filename,omitempty"  yaml:"filename,omitempty"`
	URL       string       `json:"url,omitempty"       yaml:"url,omitempty"`
	Private   bool         `json:"private,omitempty"   yaml:"private,omitempty"`
	Submitted *time.Time   `json:"submitted,omitempty" yaml:"submitted,omitempty"`
}

// ReportSample identifies the analyzed target inside a report.
type ReportSample struct {
	ID     string `json:"id,omitempty"     yaml:"id,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	Size   int64  `json:"size,omitempty"   yaml:"size,omitempty"`
	MD5    string `json:"md5,omitempty"    yaml:"md5,omitempty"`
	SHA1   string `json:"sha1,omitempty"   yaml:"sha1,omitempty"`
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
}

// ReportAnalysis is the scoring summary of a report.
type ReportAnalysis struct {
	Score  int      `json:"score,omitempty"  yaml:"score,omitempty"`
	Family []string `json:"family,omitempty" yaml:"family,omitempty"`
	Tags   []string `json:"tags,omitempty"   yaml:"tags,omitempty"`
}

// ReportError is one error the backend produced while analyzing.
type ReportError struct {
	Task   string `json:"task,omitempty" yaml:"task,omitempty"`
	Reason string `json:"reason"         yaml:"reason"`
}

// StaticFile describes one file discovered during static analysis.
// Relpath addresses members inside archive submissions.
type StaticFile struct {
	Filename string   `json:"filename"          yaml:"filename"`
	Relpath  string   `json:"relpath,omitempty" yaml:"relpath,omitempty"`
	Selected bool     `json:"selected"          yaml:"selected"`
	MD5      string   `json:"md5,omitempty"     yaml:"md5,omitempty"`
	Kind     string   `json:"kind,omitempty"    yaml:"kind,omitempty"`
	Tags     []string `json:"tags,omitempty"    yaml:"tags,omitempty"`
	Size     int64    `json:"size,omitempty"    yaml:"size,omitempty"`
}

// StaticReport is the result of the static analysis stage.
type StaticReport struct {
	Version     string          `json:"version"            yaml:"version"`
	Sample      ReportSample    `json:"sample"             yaml:"sample"`
	Analysis    *ReportAnalysis `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Files       []StaticFile    `json:"files"              yaml:"files"`
	UnpackCount int             `json:"unpack_count"       yaml:"unpack_count"`
	ErrorCount  int             `json:"error_count"        yaml:"error_count"`
}

// TaskOverview is one task entry in the overview report. Platform is only
// meaningful for sandbox tasks, not static ones.
type TaskOverview struct {
	Name     string   `json:"name"               yaml:"name"`
	Kind     string   `json:"kind,omitempty"     yaml:"kind,omitempty"`
	Status   string   `json:"status,omitempty"   yaml:"status,omitempty"`
	Target   string   `json:"target,omitempty"   yaml:"target,omitempty"`
	Platform string   `json:"platform,omitempty" yaml:"platform,omitempty"`
	Score    int      `json:"score,omitempty"    yaml:"score,omitempty"`
	Tags     []string `json:"tags,omitempty"     yaml:"tags,omitempty"`
}

// OverviewReport aggregates all tasks of a sample.
type OverviewReport struct {
	Version  string          `json:"version"            yaml:"version"`
	Sample   ReportSample    `json:"sample"             yaml:"sample"`
	Analysis *ReportAnalysis `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Tasks    []TaskOverview  `json:"tasks,omitempty"    yaml:"tasks,omitempty"`
	Errors   []ReportError   `json:"errors,omitempty"   yaml:"errors,omitempty"`
}

// Signature is one behavioral detection inside a task report.
type Signature struct {
	Name  string   `json:"name,omitempty"  yaml:"name,omitempty"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty"`
	Score int      `json:"score,omitempty" yaml:"score,omitempty"`
	Tags  []string `json:"tags,omitempty"  yaml:"tags,omitempty"`
}

// TaskReportTarget identifies the target of one sandbox run.
type TaskReportTarget struct {
	ID     string `json:"id,omitempty"     yaml:"id,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	MD5    string `json:"md5,omitempty"    yaml:"md5,omitempty"`
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
}

// TaskReport is the full report of one analysis task. Network is kept raw;
// its shape varies per backend and callers that need it decode it themselves.
type TaskReport struct {
	Version    string           `json:"version"              yaml:"version"`
	Sample     ReportSample     `json:"sample"               yaml:"sample"`
	Task       TaskReportTarget `json:"task"                 yaml:"task"`
	Errors     []ReportError    `json:"errors,omitempty"     yaml:"errors,omitempty"`
	Analysis   *ReportAnalysis  `json:"analysis,omitempty"   yaml:"analysis,omitempty"`
	Signatures []Signature      `json:"signatures,omitempty" yaml:"signatures,omitempty"`
	Network    json.RawMessage  `json:"network,omitempty"    yaml:"-"`
}

// ListResponse is the cursor-paginated envelope of every list endpoint.
// Next is the opaque continuation cursor; absent on the final page.
type ListResponse[T any] struct {
	Data []T     `json:"data"`
	Next *string `json:"next,omitempty"`
}
