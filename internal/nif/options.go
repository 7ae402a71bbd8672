package nif

import (
	"log/slog"

	"golang.org/x/text/encoding/charmap"
)

// Limits are resource ceilings applied before anything is allocated for a
// file. Zero means unlimited.
type Limits struct {
	MaxFileSize int64
	MaxRecords  int
	MaxStrings  int
}

// Options controls how tolerant a load is and where its warnings go.
type Options struct {
	// Logger receives warnings and debug traces. Defaults to slog.Default().
	Logger *slog.Logger

	// Strict turns trailing data and a missing footer into fatal errors.
	Strict bool

	// LoadUnsupported attempts versions outside the allow-list instead of
	// rejecting them.
	LoadUnsupported bool

	Limits Limits

	// Charset decodes names and other text stored in the file. Files carry
	// text in the exporting machine's code page, usually Windows-1252. When
	// nil, text is returned as stored.
	Charset *charmap.Charmap
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// decodeText converts file text to UTF-8 with cm. Plain ASCII and a nil cm
// are returned unchanged.
func decodeText(cm *charmap.Charmap, s string) string {
	if cm == nil || isASCII(s) {
		return s
	}
	out, err := cm.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
