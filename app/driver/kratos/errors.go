package kratos

import "net/http"

// getHTTPStatus extracts the status code from a possibly-nil response.
func getHTTPStatus(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
