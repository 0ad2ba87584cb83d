package helpers

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"
)

const maxFormMemory = 10 << 20

// DecodeJSON decodes the request body into dest with DisallowUnknownFields. On
// failure it writes a 400 JSON error and returns false. Callers should return
// immediately when DecodeJSON returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	return true
}

// IsForm reports whether the request carries a urlencoded or multipart body.
func IsForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// ParseForm parses either form encoding. On failure it writes a 400 and returns false.
func ParseForm(w http.ResponseWriter, r *http.Request) bool {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	return true
}

// FormList returns the values of a list field. A single value holding a JSON
// array is expanded, so both `tags=a&tags=b` and `tags=["a","b"]` work.
func FormList(r *http.Request, key string) ([]string, error) {
	values := r.PostForm[key]
	if r.MultipartForm != nil && len(values) == 0 {
		values = r.MultipartForm.Value[key]
	}
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var out []string
		if err := json.Unmarshal([]byte(values[0]), &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return values, nil
}
