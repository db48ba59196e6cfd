package bugcatcher_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra/bugcatcher"
)

func newServer(t *testing.T, handler http.HandlerFunc) *bugcatcher.Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := bugcatcher.New(srv.URL+"/api/", bugcatcher.WithHTTPClient(srv.Client()))
	gt.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	_, err := bugcatcher.New("")
	gt.Error(t, err)

	_, err = bugcatcher.New("not-a-url")
	gt.Error(t, err)

	_, err = bugcatcher.New("https://api.example.com/")
	gt.NoError(t, err)
}

func TestGetUserData(t *testing.T) {
	t.Run("returns user data", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			gt.V(t, r.URL.Path).Equal("/api/user")
			gt.V(t, r.Header.Get("Authorization")).Equal("Bearer sid-1")
			_, _ = w.Write([]byte(`{"data":{"email":"alice@example.com","name":"Alice","github_token":"ghp_x"}}`))
		})

		user, err := client.GetUserData(t.Context(), "sid-1")
		gt.NoError(t, err)
		gt.V(t, user.Email).Equal(types.Email("alice@example.com"))
		gt.V(t, user.ProviderToken).Equal(types.ProviderToken("ghp_x"))
	})

	t.Run("rejected session", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.GetUserData(t.Context(), "bad")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrUnauthorized))
	})
}

func TestRunTestsAndPoll(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tests":
			gt.V(t, r.Method).Equal(http.MethodPost)
			var input model.RunTestsInput
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			gt.V(t, input.TreeID).Equal(types.TreeSHA("t1"))
			_, _ = w.Write([]byte(`{"data":{"test_id":"test-1"}}`))

		case "/api/tests/test-1":
			_, _ = w.Write([]byte(`{"data":{"id":"test-1","status":"completed","percent_complete":100,
				"start":"2024-01-01T00:00:00Z","end":"2024-01-01T00:01:30Z"}}`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	testID, err := client.RunTests(t.Context(), "sid", &model.RunTestsInput{Project: "acme/widgets", TreeID: "t1"})
	gt.NoError(t, err)
	gt.V(t, testID).Equal(types.TestID("test-1"))

	status, err := client.PollStatus(t.Context(), "sid", testID)
	gt.NoError(t, err)
	gt.V(t, status.State).Equal(model.TestRunCompleted)
	gt.V(t, status.PercentComplete).Equal(100)
	gt.V(t, status.Duration()).Equal(int64(90))
}

func TestFetchResults(t *testing.T) {
	t.Run("decodes findings", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			gt.V(t, r.URL.Path).Equal("/api/tests/test-1/results")
			_, _ = w.Write([]byte(`{"data":{"test_run_result":[
				{"id":1,"file":"main.go","line":3,"test_suite_test":{"name":"sql injection","ftl_severity":"HIGH"}},
				{"id":"x2","test_suite_test":{"name":"weak hash","ftl_severity":"low"}}
			]}}`))
		})

		results, err := client.FetchResults(t.Context(), "sid", "test-1")
		gt.NoError(t, err)
		gt.V(t, len(results.Findings)).Equal(2)
		gt.V(t, results.Findings[0].ID).Equal("1")
		gt.V(t, results.Findings[0].Severity).Equal(model.SeverityHigh)
		gt.V(t, results.Findings[0].File).Equal("main.go")
		gt.V(t, results.Findings[1].ID).Equal("x2")
		gt.V(t, results.Findings[1].Severity).Equal(model.SeverityLow)
	})

	t.Run("missing result set", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{}}`))
		})

		results, err := client.FetchResults(t.Context(), "sid", "test-1")
		gt.NoError(t, err)
		gt.True(t, results == nil)
	})

	t.Run("provider error", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.FetchResults(t.Context(), "sid", "test-1")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrProviderResponse))
	})
}

func TestUploadFromTree(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.URL.Path).Equal("/api/projects/upload")
		var input model.UploadInput
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		gt.V(t, len(input.Files)).Equal(1)
		gt.V(t, string(input.Files[0].Content)).Equal("package main")
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.UploadFromTree(t.Context(), "sid", &model.UploadInput{
		Project: "acme/widgets",
		TreeID:  "t1",
		Files:   []*model.UploadFile{{Path: "main.go", SHA: "b1", Content: []byte("package main")}},
	})
	gt.NoError(t, err)
}
