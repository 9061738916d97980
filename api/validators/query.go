package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
)

const msgInvalidParameters = "Invalid parameters."

// ParseQueryInt reads an integer query parameter. An absent value yields zero so the
// caller's own range checks decide; a value that is not an integer is rejected here.
func ParseQueryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, msgInvalidParameters).WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// QueryString returns the raw query value without trimming.
func QueryString(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}
