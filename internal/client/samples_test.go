package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrtus0x0/triage/internal/client"
	"github.com/myrtus0x0/triage/pkg/triage"
)

func newTestClient(t *testing.T, handler http.Handler) (*client.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	triageClient, err := client.New(&triage.Config{
		Token:   "test-token",
		RootURL: server.URL,
	})
	require.NoError(t, err)

	return triageClient, server
}

func TestClient_New(t *testing.T) {
	t.Parallel()
	t.Run("requires a token", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(&triage.Config{})
		assert.ErrorIs(t, err, triage.ErrTokenRequired)

		_, err = client.New(nil)
		assert.ErrorIs(t, err, triage.ErrTokenRequired)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_SubmitSampleFile(t *testing.T) {
	t.Parallel()

	triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/v0/samples", request.URL.Path)

		mediaType, params, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)

		body, err := io.ReadAll(request.Body)
		require.NoError(t, err)

		reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])

		// Metadata part first, file part second.
		metaPart, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "_json", metaPart.FormName())

		var metadata map[string]interface{}

		err = json.NewDecoder(metaPart).Decode(&metadata)
		require.NoError(t, err)
		assert.Equal(t, "file", metadata["kind"])
		assert.Equal(t, true, metadata["interactive"])
		assert.NotContains(t, metadata, "url")

		profiles, ok := metadata["profiles"].([]interface{})
		require.True(t, ok)
		require.Len(t, profiles, 1)
		selection, ok := profiles[0].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "win10", selection["profile"])

		filePart, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "file", filePart.FormName())
		assert.Equal(t, "malware.exe", filePart.FileName())

		content, err := io.ReadAll(filePart)
		require.NoError(t, err)
		assert.Equal(t, "MZ payload", string(content))

		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(`{"id":"sample1","status":"pending","kind":"file","filename":"malware.exe"}`))
	}))

	sample, err := triageClient.SubmitSampleFile(context.Background(), "malware.exe",
		strings.NewReader("MZ payload"), true, []triage.ProfileSelection{{Profile: "win10"}})
	require.NoError(t, err)
	assert.Equal(t, "sample1", sample.ID)
	assert.Equal(t, triage.SampleStatusPending, sample.Status)
}

func TestClient_SubmitSampleFile_NilProfiles(t *testing.T) {
	t.Parallel()

	triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, params, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
		require.NoError(t, err)

		body, err := io.ReadAll(request.Body)
		require.NoError(t, err)

		reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
		metaPart, err := reader.NextPart()
		require.NoError(t, err)

		metadata, err := io.ReadAll(metaPart)
		require.NoError(t, err)

		// The profiles key is present even without a selection.
		assert.Contains(t, string(metadata), `"profiles":[]`)

		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(`{"id":"sample1"}`))
	}))

	_, err := triageClient.SubmitSampleFile(context.Background(), "a.bin", strings.NewReader("x"), false, nil)
	require.NoError(t, err)
}

func TestClient_SubmitSampleURL(t *testing.T) {
	t.Parallel()

	triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/v0/samples", request.URL.Path)
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		body, err := io.ReadAll(request.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"url","url":"http://evil.example/payload","interactive":false,"profiles":[]}`,
			string(body))

		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(`{"id":"sample2","status":"pending","kind":"url","url":"http://evil.example/payload"}`))
	}))

	sample, err := triageClient.SubmitSampleURL(context.Background(), "http://evil.example/payload", false, nil)
	require.NoError(t, err)
	assert.Equal(t, "sample2", sample.ID)
	assert.Equal(t, triage.SampleKindURL, sample.Kind)
}

func TestClient_SampleListings(t *testing.T) {
	t.Parallel()
	t.Run("owned samples paginate with offset", func(t *testing.T) {
		t.Parallel()

		var paths []string

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			paths = append(paths, request.URL.RequestURI())

			if len(paths) == 1 {
				_, _ = writer.Write([]byte(`{"data":[{"id":"s1"},{"id":"s2"}],"next":"c2"}`))

				return
			}

			_, _ = writer.Write([]byte(`{"data":[{"id":"s3"}]}`))
		}))

		samples, err := triageClient.OwnedSamples(context.Background(), 10).All()
		require.NoError(t, err)
		require.Len(t, samples, 3)
		assert.Equal(t, "s1", samples[0].ID)
		assert.Equal(t, "s3", samples[2].ID)

		require.Len(t, paths, 2)
		assert.Equal(t, "/v0/samples?subset=owned", paths[0])
		assert.Equal(t, "/v0/samples?subset=owned&offset=c2", paths[1])
	})

	t.Run("public samples use the public subset", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v0/samples?subset=public", request.URL.RequestURI())
			_, _ = writer.Write([]byte(`{"data":[]}`))
		}))

		samples, err := triageClient.PublicSamples(context.Background(), 10).All()
		require.NoError(t, err)
		assert.Empty(t, samples)
	})

	t.Run("search escapes the query", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v0/search", request.URL.Path)
			assert.Equal(t, "family:emotet AND tag:exe", request.URL.Query().Get("query"))
			_, _ = writer.Write([]byte(`{"data":[{"id":"s9"}]}`))
		}))

		samples, err := triageClient.Search(context.Background(), "family:emotet AND tag:exe", 10).All()
		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.Equal(t, "s9", samples[0].ID)
	})
}

func TestClient_SampleByID(t *testing.T) {
	t.Parallel()
	t.Run("found", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v0/samples/sample1", request.URL.Path)
			_, _ = writer.Write([]byte(`{"id":"sample1","status":"reported","tasks":[{"id":"behavioral1","status":"reported"}]}`))
		}))

		sample, err := triageClient.SampleByID(context.Background(), "sample1")
		require.NoError(t, err)
		assert.Equal(t, "sample1", sample.ID)
		require.Len(t, sample.Tasks, 1)
		assert.Equal(t, "behavioral1", sample.Tasks[0].ID)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"error":"NOT_FOUND","message":"no such sample"}`))
		}))

		_, err := triageClient.SampleByID(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, triage.IsNotFound(err))
	})
}

func TestClient_DeleteSample(t *testing.T) {
	t.Parallel()

	triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "DELETE", request.Method)
		assert.Equal(t, "/v0/samples/sample1", request.URL.Path)
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(`{}`))
	}))

	err := triageClient.DeleteSample(context.Background(), "sample1")
	require.NoError(t, err)
}

func TestClient_Reports(t *testing.T) {
	t.Parallel()
	t.Run("static report", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v0/samples/sample1/reports/static", request.URL.Path)
			_, _ = writer.Write([]byte(`{"sample":{"id":"sample1"},"files":[{"filename":"dropper.exe","relpath":"archive/dropper.exe"}]}`))
		}))

		report, err := triageClient.StaticReport(context.Background(), "sample1")
		require.NoError(t, err)
		require.Len(t, report.Files, 1)
		assert.Equal(t, "dropper.exe", report.Files[0].Filename)
	})

	t.Run("overview report", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/samples/sample1/overview.json", request.URL.Path)
			_, _ = writer.Write([]byte(`{"sample":{"id":"sample1","score":10},"tasks":[{"name":"behavioral1","platform":"windows10-2004_x64"}]}`))
		}))

		report, err := triageClient.OverviewReport(context.Background(), "sample1")
		require.NoError(t, err)
		require.Len(t, report.Tasks, 1)
		assert.Equal(t, "behavioral1", report.Tasks[0].Name)
	})

	t.Run("task report", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v0/samples/sample1/behavioral1/report_triage.json", request.URL.Path)
			_, _ = writer.Write([]byte(`{"sample":{"id":"sample1"},"analysis":{"score":8},"signatures":[{"name":"suspicious-process"}]}`))
		}))

		report, err := triageClient.TaskReport(context.Background(), "sample1", "behavioral1")
		require.NoError(t, err)
		require.Len(t, report.Signatures, 1)
		assert.Equal(t, "suspicious-process", report.Signatures[0].Name)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_KernelReport(t *testing.T) {
	t.Parallel()
	t.Run("windows task streams onemon.json", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			switch request.URL.Path {
			case "/v1/samples/sample1/overview.json":
				_, _ = writer.Write([]byte(`{"tasks":[{"name":"behavioral1","platform":"windows10-2004_x64"}]}`))
			case "/v0/samples/sample1/behavioral1/logs/onemon.json":
				_, _ = writer.Write([]byte("{\"kind\":\"process_create\"}\n{\"kind\":\"file_write\"}\n\n"))
			default:
				t.Errorf("unexpected path %q", request.URL.Path)
				writer.WriteHeader(http.StatusNotFound)
			}
		}))

		stream, err := triageClient.KernelReport(context.Background(), "sample1", "behavioral1")
		require.NoError(t, err)

		defer func() { _ = stream.Close() }()

		first, err := stream.Next()
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"process_create"}`, string(first))

		second, err := stream.Next()
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"file_write"}`, string(second))

		_, err = stream.Next()
		assert.ErrorIs(t, err, triage.ErrEndOfStream)
	})

	t.Run("linux task streams stahp.json", func(t *testing.T) {
		t.Parallel()

		var logPath string

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/v1/samples/sample1/overview.json" {
				_, _ = writer.Write([]byte(`{"tasks":[{"name":"behavioral2","platform":"linux_amd64"}]}`))

				return
			}

			logPath = request.URL.Path
			_, _ = writer.Write([]byte("\n"))
		}))

		stream, err := triageClient.KernelReport(context.Background(), "sample1", "behavioral2")
		require.NoError(t, err)

		defer func() { _ = stream.Close() }()

		assert.Equal(t, "/v0/samples/sample1/behavioral2/logs/stahp.json", logPath)
	})

	t.Run("unsupported platform makes no log request", func(t *testing.T) {
		t.Parallel()

		var requests []string

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requests = append(requests, request.URL.Path)
			_, _ = writer.Write([]byte(`{"tasks":[{"name":"behavioral1","platform":"macos12_arm64"}]}`))
		}))

		_, err := triageClient.KernelReport(context.Background(), "sample1", "behavioral1")
		require.ErrorIs(t, err, triage.ErrUnsupportedPlatform)
		assert.Equal(t, []string{"/v1/samples/sample1/overview.json"}, requests)
	})

	t.Run("unknown task", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`{"tasks":[{"name":"behavioral1","platform":"windows10-2004_x64"}]}`))
		}))

		_, err := triageClient.KernelReport(context.Background(), "sample1", "behavioral9")
		assert.ErrorIs(t, err, triage.ErrTaskNotFound)
	})
}

func TestClient_Downloads(t *testing.T) {
	t.Parallel()
	t.Run("task file", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v0/samples/sample1/behavioral1/memory.dmp", request.URL.Path)
			_, _ = writer.Write([]byte{0xde, 0xad, 0xbe, 0xef})
		}))

		content, err := triageClient.SampleTaskFile(context.Background(), "sample1", "behavioral1", "memory.dmp")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, content)
	})

	t.Run("tar archive", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v0/samples/sample1/archive", request.URL.Path)
			_, _ = writer.Write([]byte("tar bytes"))
		}))

		content, err := triageClient.SampleArchiveTar(context.Background(), "sample1")
		require.NoError(t, err)
		assert.Equal(t, "tar bytes", string(content))
	})

	t.Run("zip archive", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v0/samples/sample1/archive.zip", request.URL.Path)
			_, _ = writer.Write([]byte("zip bytes"))
		}))

		content, err := triageClient.SampleArchiveZip(context.Background(), "sample1")
		require.NoError(t, err)
		assert.Equal(t, "zip bytes", string(content))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		}))

		_, err := triageClient.SampleTaskFile(context.Background(), "sample1", "behavioral1", "missing.bin")
		assert.ErrorIs(t, err, triage.ErrUnexpectedStatus)
	})
}
