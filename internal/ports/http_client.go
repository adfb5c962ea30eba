package ports

import "net/http"

// HTTPClient abstracts HTTP operations for dependency injection.
// *http.Client satisfies this interface; tests swap in recording clients.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
