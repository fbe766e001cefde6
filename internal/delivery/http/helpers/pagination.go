package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"lawflow/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParsePageRequest reads page, size, sort_by and sort_order from the query
// string. Missing values take the defaults; malformed or out-of-range values
// are an error that callers report as 400.
func ParsePageRequest(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	req := domain.NewPageRequest()

	var err error
	if req.Page, err = intParam(q, "page", req.Page); err != nil {
		return req, err
	}
	if req.Size, err = intParam(q, "size", req.Size); err != nil {
		return req, err
	}
	req.SortBy = strings.TrimSpace(q.Get("sort_by"))
	if s := q.Get("sort_order"); s != "" {
		req.SortOrder = strings.ToLower(s)
	}

	if err := validate.Struct(req); err != nil {
		return req, describeValidation(err)
	}
	return req, nil
}

// queryNames maps PageRequest fields to their query parameter names.
var queryNames = map[string]string{
	"Page":      "page",
	"Size":      "size",
	"SortBy":    "sort_by",
	"SortOrder": "sort_order",
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := queryNames[fe.Field()]
		switch fe.Tag() {
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", name, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", name, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", name, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", name))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func intParam(q url.Values, name string, def int) (int, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

// Int64Param parses an optional positive int64 query parameter. Missing means 0.
func Int64Param(r *http.Request, name string) (int64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}

// RequiredInt64Param is Int64Param for parameters that must be present.
func RequiredInt64Param(r *http.Request, name string) (int64, error) {
	v, err := Int64Param(r, name)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("%s is required", name)
	}
	return v, nil
}

// PathID parses a positive int64 path value.
func PathID(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}
