package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 255

	// MaxTagNameLength is the maximum length for tag names.
	MaxTagNameLength = 50

	// MaxUploadBytes is the largest document upload relayed to the backend.
	MaxUploadBytes = 50 << 20
)
