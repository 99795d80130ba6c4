package client

import (
	"mime"
	"strings"
)

// decode turns the raw response into the final result value: JSON decodes
// into structured data, text yields a string, auto sniffs the Content-Type.
func decode(resp *Response, responseType ResponseType) (any, error) {
	switch responseType {
	case ResponseTypeJSON:
		return decodeJSON(resp)
	case ResponseTypeText:
		return resp.Text(), nil
	default:
		if isStructured(resp.Header("Content-Type")) {
			return decodeJSON(resp)
		}
		return resp.Text(), nil
	}
}

func decodeJSON(resp *Response) (any, error) {
	v, err := resp.JSON()
	if err != nil {
		return nil, &ResponseFormatError{
			ContentType: resp.Header("Content-Type"),
			Err:         err,
		}
	}
	return v, nil
}

// isStructured reports whether the content type indicates a structured
// (JSON) body: application/json, text/json, or any +json suffix type.
func isStructured(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType == "application/json" ||
		mediaType == "text/json" ||
		strings.HasSuffix(mediaType, "+json")
}
