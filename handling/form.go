package handling

import (
	"encoding/json"
	"net/http"
	"storefront_server/lib"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseForm parses a multipart or url-encoded request body. Uploaded files
// beyond maxMemory spill to temporary files.
func ParseForm(r *http.Request, maxMemory int64) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxMemory)
	}
	return r.ParseForm()
}

// FormOptional returns the value of key, or nil when the form has no such field.
func FormOptional(r *http.Request, key string) *string {
	if _, ok := r.PostForm[key]; !ok {
		return nil
	}
	v := r.PostForm.Get(key)
	return &v
}

// FormBool accepts the values HTML forms and fetch clients send for a
// checkbox. A missing or blank field yields nil.
func FormBool(r *http.Request, key string, ve *lib.ValidationError) *bool {
	raw := strings.TrimSpace(r.PostForm.Get(key))
	if raw == "" {
		return nil
	}
	var b bool
	switch strings.ToLower(raw) {
	case "1", "true", "on", "yes":
		b = true
	case "0", "false", "off", "no":
		b = false
	default:
		ve.Add(key, "must be true or false")
		return nil
	}
	return &b
}

// FormInt parses an optional integer field.
func FormInt(r *http.Request, key string, ve *lib.ValidationError) *int {
	raw := strings.TrimSpace(r.PostForm.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		ve.Add(key, "must be an integer")
		return nil
	}
	return &n
}

// FormID parses a reference to another record. Blank is zero, which the
// input's own validation reports as required.
func FormID(r *http.Request, key string, ve *lib.ValidationError) int64 {
	raw := strings.TrimSpace(r.PostForm.Get(key))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		ve.Add(key, "must be an integer")
		return 0
	}
	return id
}

func FormDecimal(r *http.Request, key string, ve *lib.ValidationError) *decimal.Decimal {
	raw := strings.TrimSpace(r.PostForm.Get(key))
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		ve.Add(key, "must be a number")
		return nil
	}
	return &d
}

// FormJSON decodes a JSON-encoded form field into dst. Blank leaves dst untouched.
func FormJSON(r *http.Request, key string, dst any, ve *lib.ValidationError) {
	raw := strings.TrimSpace(r.PostForm.Get(key))
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		ve.Add(key, "must be a valid JSON array")
	}
}
