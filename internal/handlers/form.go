package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
)

const (
	formField     = "url"
	maxFormMemory = 1 << 20
)

var errMissingBoundary = errors.New("multipart body without boundary")

// decodeShortenBody extracts the url field. Missing fields decode to "" and are
// rejected by the service; only undecodable JSON or multipart bodies are errors here.
func decodeShortenBody(contentType string, format Format, body []byte) (string, error) {
	if format == FormatJSON {
		var req shortenJSONRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return "", err
		}

		return req.URL, nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err == nil && mediaType == "multipart/form-data" {
		return multipartValue(body, params["boundary"], formField)
	}

	return urlencodedValue(string(body), formField), nil
}

// urlencodedValue returns the first value of name. Pairs are split on '&' only, and
// keys or values that fail to unescape are kept verbatim.
func urlencodedValue(body, name string) string {
	for _, pair := range strings.Split(body, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if unescapeFormValue(key) == name {
			return unescapeFormValue(value)
		}
	}

	return ""
}

func unescapeFormValue(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}

	return s
}

func multipartValue(body []byte, boundary, name string) (string, error) {
	if boundary == "" {
		return "", errMissingBoundary
	}

	form, err := multipart.NewReader(bytes.NewReader(body), boundary).ReadForm(maxFormMemory)
	if err != nil {
		return "", err
	}

	defer func() { _ = form.RemoveAll() }()

	if values := form.Value[name]; len(values) > 0 {
		return values[0], nil
	}

	return "", nil
}
