package berdu

import "fmt"

// APIError reports a failed API call: a non-2xx HTTP status, or a logical
// error field carried in an otherwise successful response.
type APIError struct {
	Endpoint string
	Status   int
	Detail   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed %s (status=%d): %s", e.Endpoint, e.Status, e.Detail)
}

// InvalidResponseError reports a response body that was not valid JSON.
type InvalidResponseError struct {
	Endpoint string
	Status   int
	Snippet  string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid JSON from %s (status=%d): %s", e.Endpoint, e.Status, e.Snippet)
}
