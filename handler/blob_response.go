package handler

import (
	"net/http"
	"strconv"
)

type blobResponse struct {
	contentType  string
	cacheControl string
	data         []byte
}

func (b blobResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", b.contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b.data)))
	if b.cacheControl != "" {
		w.Header().Set("Cache-Control", b.cacheControl)
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(b.data)
	return err
}

// BlobOption configures a Blob response.
type BlobOption func(*blobResponse)

// WithCacheControl sets the Cache-Control header.
func WithCacheControl(v string) BlobOption {
	return func(b *blobResponse) { b.cacheControl = v }
}

// Blob writes data verbatim with the given content type.
func Blob(contentType string, data []byte, opts ...BlobOption) Response {
	b := blobResponse{contentType: contentType, data: data}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
