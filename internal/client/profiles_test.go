package client_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrtus0x0/triage/pkg/triage"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_SetSampleProfile(t *testing.T) {
	t.Parallel()
	t.Run("explicit assignment", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "/v0/samples/sample1/profile", request.URL.Path)

			body, err := io.ReadAll(request.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"auto":false,"profiles":[{"profile":"win10"},{"profile":"win7","pick":"archive/a.exe"}]}`,
				string(body))

			_, _ = writer.Write([]byte(`{}`))
		}))

		err := triageClient.SetSampleProfile(context.Background(), "sample1", []triage.ProfileSelection{
			{Profile: "win10"},
			{Profile: "win7", Pick: "archive/a.exe"},
		})
		require.NoError(t, err)
	})

	t.Run("explicit assignment with no profiles keeps the key", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			body, err := io.ReadAll(request.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"auto":false,"profiles":[]}`, string(body))

			_, _ = writer.Write([]byte(`{}`))
		}))

		err := triageClient.SetSampleProfile(context.Background(), "sample1", nil)
		require.NoError(t, err)
	})

	t.Run("automatic assignment never carries a profiles key", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			body, err := io.ReadAll(request.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"auto":true,"pick":["archive/a.exe","archive/b.dll"]}`, string(body))
			assert.NotContains(t, string(body), "profiles")

			_, _ = writer.Write([]byte(`{}`))
		}))

		err := triageClient.SetSampleProfileAutomatic(context.Background(), "sample1",
			[]string{"archive/a.exe", "archive/b.dll"})
		require.NoError(t, err)
	})

	t.Run("automatic assignment with no pick keeps the key", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			body, err := io.ReadAll(request.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"auto":true,"pick":[]}`, string(body))

			_, _ = writer.Write([]byte(`{}`))
		}))

		err := triageClient.SetSampleProfileAutomatic(context.Background(), "sample1", nil)
		require.NoError(t, err)
	})
}

func TestClient_ProfileManagement(t *testing.T) {
	t.Parallel()
	t.Run("create", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "/v0/profiles", request.URL.Path)

			body, err := io.ReadAll(request.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"name":"win10-long","tags":["exe","dll"],"network":"internet","timeout":300}`,
				string(body))

			_, _ = writer.Write([]byte(`{}`))
		}))

		err := triageClient.CreateProfile(context.Background(), "win10-long",
			[]string{"exe", "dll"}, triage.NetworkInternet, 300)
		require.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "DELETE", request.Method)
			assert.Equal(t, "/v0/profiles/win10-long", request.URL.Path)
			_, _ = writer.Write([]byte(`{}`))
		}))

		err := triageClient.DeleteProfile(context.Background(), "win10-long")
		require.NoError(t, err)
	})

	t.Run("list paginates", func(t *testing.T) {
		t.Parallel()

		var paths []string

		triageClient, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			paths = append(paths, request.URL.RequestURI())

			if len(paths) == 1 {
				_, _ = writer.Write([]byte(`{"data":[{"id":"p1","name":"win10"}],"next":"c1"}`))

				return
			}

			_, _ = writer.Write([]byte(`{"data":[{"id":"p2","name":"win7"}]}`))
		}))

		profiles, err := triageClient.Profiles(context.Background(), 10).All()
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, "win10", profiles[0].Name)
		assert.Equal(t, "win7", profiles[1].Name)

		require.Len(t, paths, 2)
		assert.Equal(t, "/v0/profiles", paths[0])
		assert.Equal(t, "/v0/profiles?offset=c1", paths[1])
	})
}
