package apiclient

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// decodeBody turns a 2xx body into a Go value based on the response content type.
func decodeBody(header http.Header, body []byte) (any, error) {
	if len(body) == 0 {
		return nil, nil
	}

	contentType := ""
	if header != nil {
		contentType = header.Get("Content-Type")
	}
	mediaType := ""
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			mt = strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
		}
		mediaType = strings.ToLower(mt)
	}

	switch {
	case mediaType == "":
		var out any
		if err := json.Unmarshal(body, &out); err != nil {
			return string(body), nil
		}
		return out, nil
	case isJSONMediaType(mediaType):
		var out any
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("decode json response: %w", err)
		}
		return out, nil
	case isTextMediaType(mediaType):
		return string(body), nil
	default:
		return body, nil
	}
}

func isJSONMediaType(mt string) bool {
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func isTextMediaType(mt string) bool {
	return strings.HasPrefix(mt, "text/") ||
		mt == "application/xml" ||
		strings.HasSuffix(mt, "+xml") ||
		mt == "application/xhtml+xml"
}
