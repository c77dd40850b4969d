package models

import "io"

// FileMode selects how a document's bytes are served
type FileMode string

const (
	// FileDownload serves the file as an attachment
	FileDownload FileMode = "download"
	// FileView serves the file for inline display
	FileView FileMode = "view"
)

// Valid reports whether m is a known mode
func (m FileMode) Valid() bool {
	return m == FileDownload || m == FileView
}

// FileStream is a document body relayed from the backend. Body must be closed.
type FileStream struct {
	Body               io.ReadCloser
	ContentType        string
	ContentLength      int64
	ContentDisposition string
}

// UploadRequest is a multipart upload forwarded to the backend as received.
// ContentLength is -1 when unknown.
type UploadRequest struct {
	ContentType   string
	ContentLength int64
	Body          io.Reader
}
