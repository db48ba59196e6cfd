package bugcatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
	"github.com/secmon-lab/scanhook/pkg/utils/safe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the test provider's REST API. Every call is
// authenticated with the subscriber's session identifier.
type Client struct {
	baseURL    *url.URL
	httpClient HTTPClient
}

var _ interfaces.TestProvider = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Client) {
		x.httpClient = client
	}
}

func New(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "test provider URL is empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid test provider URL",
			goerr.V("url", baseURL),
			goerr.V("error", err.Error()),
		)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "test provider URL requires scheme and host",
			goerr.V("url", baseURL),
		)
	}

	client := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   2 * time.Minute,
		},
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

type envelope[T any] struct {
	Data *T `json:"data"`
}

type userResponse struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PictureLink string `json:"picture_link"`
	GitHubToken string `json:"github_token"`
}

func (x *Client) GetUserData(ctx context.Context, sid types.SessionID) (*model.UserData, error) {
	var resp envelope[userResponse]
	if err := x.call(ctx, sid, http.MethodGet, "user", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, nil
	}

	return &model.UserData{
		Email:         types.Email(resp.Data.Email),
		Name:          resp.Data.Name,
		PictureLink:   resp.Data.PictureLink,
		ProviderToken: types.ProviderToken(resp.Data.GitHubToken),
	}, nil
}

func (x *Client) UploadFromTree(ctx context.Context, sid types.SessionID, input *model.UploadInput) error {
	return x.call(ctx, sid, http.MethodPost, "projects/upload", input, nil)
}

type runTestsResponse struct {
	TestID string `json:"test_id"`
}

func (x *Client) RunTests(ctx context.Context, sid types.SessionID, input *model.RunTestsInput) (types.TestID, error) {
	var resp envelope[runTestsResponse]
	if err := x.call(ctx, sid, http.MethodPost, "tests", input, &resp); err != nil {
		return "", err
	}
	if resp.Data == nil || resp.Data.TestID == "" {
		return "", goerr.Wrap(types.ErrProviderResponse, "test ID is missing in response")
	}

	return types.TestID(resp.Data.TestID), nil
}

type testStatusResponse struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	PercentComplete int       `json:"percent_complete"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
}

func (x *Client) PollStatus(ctx context.Context, sid types.SessionID, testID types.TestID) (*model.TestStatus, error) {
	var resp envelope[testStatusResponse]
	if err := x.call(ctx, sid, http.MethodGet, "tests/"+url.PathEscape(string(testID)), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, goerr.Wrap(types.ErrProviderResponse, "test status is missing in response",
			goerr.V("testID", testID),
		)
	}

	return &model.TestStatus{
		ID:              testID,
		State:           toRunState(resp.Data.Status),
		PercentComplete: resp.Data.PercentComplete,
		Start:           resp.Data.Start,
		End:             resp.Data.End,
	}, nil
}

func toRunState(status string) model.TestRunState {
	switch strings.ToLower(status) {
	case "completed", "complete", "finished", "done":
		return model.TestRunCompleted
	case "failed", "error", "canceled", "cancelled":
		return model.TestRunFailed
	case "running", "in_progress", "started":
		return model.TestRunRunning
	default:
		return model.TestRunQueued
	}
}

type testRunResult struct {
	ID            json.RawMessage `json:"id"`
	File          string          `json:"file"`
	Line          int             `json:"line"`
	TestSuiteTest struct {
		Name        string `json:"name"`
		FTLSeverity string `json:"ftl_severity"`
	} `json:"test_suite_test"`
}

// FetchResults returns nil when the provider has no result set for the run.
func (x *Client) FetchResults(ctx context.Context, sid types.SessionID, testID types.TestID) (*model.TestResults, error) {
	var resp envelope[json.RawMessage]
	if err := x.call(ctx, sid, http.MethodGet, "tests/"+url.PathEscape(string(testID))+"/results", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, nil
	}

	var data struct {
		TestRunResult []json.RawMessage `json:"test_run_result"`
	}
	if err := json.Unmarshal(*resp.Data, &data); err != nil {
		return nil, goerr.Wrap(types.ErrProviderResponse, "failed to decode test results",
			goerr.V("testID", testID),
			goerr.V("error", err.Error()),
		)
	}
	if data.TestRunResult == nil {
		return nil, nil
	}

	results := &model.TestResults{
		TestID:   testID,
		Findings: make([]*model.Finding, 0, len(data.TestRunResult)),
	}
	for _, raw := range data.TestRunResult {
		var hit testRunResult
		if err := json.Unmarshal(raw, &hit); err != nil {
			return nil, goerr.Wrap(types.ErrProviderResponse, "failed to decode test result",
				goerr.V("testID", testID),
				goerr.V("error", err.Error()),
			)
		}

		results.Findings = append(results.Findings, &model.Finding{
			ID:       strings.Trim(string(hit.ID), `"`),
			Title:    hit.TestSuiteTest.Name,
			File:     hit.File,
			Line:     hit.Line,
			Severity: model.Severity(strings.ToLower(hit.TestSuiteTest.FTLSeverity)),
			Raw:      raw,
		})
	}

	return results, nil
}

func (x *Client) call(ctx context.Context, sid types.SessionID, method, path string, input, output any) error {
	endpoint := x.baseURL.JoinPath(path)

	var body io.Reader
	if input != nil {
		raw, err := json.Marshal(input)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request", goerr.V("path", path))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	req.Header.Set("Authorization", "Bearer "+string(sid))
	req.Header.Set("Accept", "application/json")
	if input != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.From(ctx).Debug("Sending test provider request",
		slog.String("method", method),
		slog.String("path", path),
	)

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request to test provider",
			goerr.V("method", method),
			goerr.V("path", path),
		)
	}
	defer safe.CloseBody(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return goerr.Wrap(types.ErrUnauthorized, "test provider rejected session",
			goerr.V("status", resp.StatusCode),
			goerr.V("path", path),
		)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.Wrap(types.ErrProviderResponse, "unexpected test provider response",
			goerr.V("status", resp.StatusCode),
			goerr.V("path", path),
			goerr.V("body", string(respBody)),
		)
	}

	if output == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(output); err != nil {
		return goerr.Wrap(types.ErrProviderResponse, "failed to decode test provider response",
			goerr.V("path", path),
			goerr.V("error", err.Error()),
		)
	}

	return nil
}
