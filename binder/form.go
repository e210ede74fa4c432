package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// Form binds `form:` tagged fields from an application/x-www-form-urlencoded
// body. Requests without a body content type are not applicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return ErrBinderNotApplicable
		}

		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
		}
		if mediaType != "application/x-www-form-urlencoded" {
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
		}

		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return bindValues(v, "form", fromValues(r.PostForm), ErrInvalidForm)
	}
}
