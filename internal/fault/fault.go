// Package fault defines the error kinds surfaced by a lightness run.
//
// Every failure is reported by wrapping one of the sentinels below with
// fmt.Errorf("%w: ...") so callers can classify it with errors.Is while
// keeping the offending path or value in the message.
package fault

import "errors"

var (
	// ErrPath reports an input root that is neither a readable directory nor a regular file.
	ErrPath = errors.New("path error")

	// ErrMetadata reports a filesystem timestamp that could not be read for ordering.
	ErrMetadata = errors.New("metadata error")

	// ErrConfig reports an out-of-range mode, ordering key or malformed setting.
	ErrConfig = errors.New("config error")

	// ErrROI reports a region of interest outside the image or with no pixels.
	ErrROI = errors.New("roi error")

	// ErrDecode reports a file that is not a readable image.
	ErrDecode = errors.New("decode error")

	// ErrUnsupportedFormat reports a decoded pixel layout outside the supported set.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

var kinds = []struct {
	err   error
	label string
}{
	{ErrPath, "path"},
	{ErrMetadata, "metadata"},
	{ErrConfig, "config"},
	{ErrROI, "roi"},
	{ErrDecode, "decode"},
	{ErrUnsupportedFormat, "unsupported_format"},
}

// KindOf returns a short label for the first error kind found in err's chain,
// or "unknown" when err does not wrap any of them.
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.label
		}
	}
	return "unknown"
}
