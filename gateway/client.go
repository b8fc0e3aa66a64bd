package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"techquiz-core/models"
)

var (
	// ErrServiceUnavailable wraps transport-level failures: the request
	// never produced an HTTP response.
	ErrServiceUnavailable = errors.New("quiz backend unavailable")
	// ErrStaleSubmission means the backend rejected a late or duplicate
	// attempt submission.
	ErrStaleSubmission = errors.New("stale submission rejected by backend")
)

// APIError is a normalized 4xx/5xx response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// TokenSource supplies the session token attached to authenticated
// requests. The auth session satisfies this.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient builds a gateway client. tokens may be nil for unauthenticated
// use; httpClient defaults to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
	}
}

type quizListResponse struct {
	Items      []models.Quiz `json:"items"`
	TotalPages int           `json:"totalPages"`
	TotalCount int           `json:"totalCount"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListQuizzes fetches one catalog page.
func (c *Client) ListQuizzes(ctx context.Context, page, pageSize int) (*models.QuizPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))

	var payload quizListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes?"+query.Encode(), nil, &payload); err != nil {
		return nil, err
	}

	return &models.QuizPage{
		Items:      payload.Items,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: payload.TotalPages,
		TotalCount: payload.TotalCount,
	}, nil
}

// Login exchanges validated credentials for a session token.
func (c *Client) Login(ctx context.Context, payload *models.LoginPayload) (string, error) {
	var response loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", payload, &response); err != nil {
		return "", err
	}
	return response.Token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, payload *models.RegisterPayload) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", payload, nil)
}

// SubmitAttempt sends a finalized attempt for authoritative grading. A 409
// or 410 from the backend maps to ErrStaleSubmission.
func (c *Client) SubmitAttempt(ctx context.Context, quizID string, sub models.Submission) (*models.QuizResult, error) {
	if strings.TrimSpace(quizID) == "" {
		return nil, errors.New("quiz id is required")
	}

	var result models.QuizResult
	path := "/attempts/" + url.PathEscape(quizID) + "/submit"
	if err := c.doJSON(ctx, http.MethodPost, path, sub, &result); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusConflict || apiErr.StatusCode == http.StatusGone) {
			return nil, fmt.Errorf("%w: %s", ErrStaleSubmission, apiErr.Message)
		}
		return nil, err
	}
	return &result, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody, responseBody any) error {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
