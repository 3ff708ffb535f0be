package config

const (
	// MaxDocumentNameLength fits VARCHAR(255)
	MaxDocumentNameLength = 255

	// MaxDescriptionLength bounds the free-text description of a generation request.
	MaxDescriptionLength = 4000

	// MaxSampleLength bounds each request/response JSON sample (1MB).
	MaxSampleLength = 1 << 20

	// MaxPageSize caps prompt-history pages.
	MaxPageSize = 100

	// DefaultPageSize is used when a page request omits its size.
	DefaultPageSize = 10
)
