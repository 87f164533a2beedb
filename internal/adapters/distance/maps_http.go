package distance

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type httpStatusError struct {
	Code int
	Body string
}

// apiStatusError is returned when the API answers 200 with a non-OK status field.
type apiStatusError struct {
	Endpoint string
	Status   string
	Message  string
}

func (c *MapsClient) newRequest(
	ctx context.Context,
	endpoint string,
	params map[string]string,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do performs a single attempt. Callers fall back instead of retrying.
func (c *MapsClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (e *apiStatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s status %s: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s status %s", e.Endpoint, e.Status)
}
