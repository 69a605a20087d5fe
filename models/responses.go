package models

// MessageResponse is the generic success envelope returned by routes that
// have no richer payload to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope returned by every failing route.
// The Error field carries a short human-readable description; structured
// detail stays in the server logs.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginResponse carries the bearer token issued after a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// UploadResponse confirms a stored upload and echoes the filename under
// which the asset was recorded.
type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// TransformResponse reports the outcome of a transform operation.
//
// Filename is the file the result was written to: the original name for
// in-place operations, the prefixed derived name otherwise. Width and Height
// are the dimensions of the written result.
type TransformResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// GalleryResponse lists the download URLs of every asset owned by the caller.
type GalleryResponse struct {
	Images []string `json:"images"`
}
