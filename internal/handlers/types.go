package handlers

// HomeResponse is the static landing page.
type HomeResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// ShortenRequest carries the raw body so JSON and form submissions share one operation.
type ShortenRequest struct {
	ContentType string `doc:"application/json or application/x-www-form-urlencoded" header:"Content-Type"`
	RawBody     []byte
}

// ShortenResponse is either a JSON object or an HTML fragment, matching the request.
type ShortenResponse struct {
	Status      int
	ContentType string `header:"Content-Type"`
	Location    string `doc:"The short URL" header:"Location"`
	Body        []byte
}

// shortenJSONRequest is the JSON form of a shorten request.
type shortenJSONRequest struct {
	URL string `json:"url"`
}

// shortenJSONResponse is the JSON body of a successful shorten request.
type shortenJSONResponse struct {
	ShortURL string `json:"shortUrl"`
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Key string `doc:"The short key" example:"aB3xY9" path:"key"`
}

// RedirectResponse redirects to the long URL, or carries an HTML error page.
type RedirectResponse struct {
	Status      int
	Location    string `header:"Location"`
	ContentType string `header:"Content-Type"`
	Body        []byte
}
