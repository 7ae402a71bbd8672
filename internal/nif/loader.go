package nif

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nifgraph/internal/nifstream"
)

// LoadFile opens path and loads it under its base name.
func LoadFile(path string, opts Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nif: %w", err)
	}
	defer f.Close()
	return Load(filepath.Base(path), f, opts)
}

// Load reads the whole of r and parses it. The name is used for messages only.
func Load(name string, r io.Reader, opts Options) (*File, error) {
	if max := opts.Limits.MaxFileSize; max > 0 {
		r = io.LimitReader(r, max+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("nif: %s: %w", name, err)
	}
	if max := opts.Limits.MaxFileSize; max > 0 && int64(len(data)) > max {
		return nil, newError(KindFormat, name, -1, "", fmt.Errorf("%w: file larger than %d bytes", ErrLimit, max))
	}
	return Parse(name, data, opts)
}

// Parse loads a file held in memory. It either returns a fully resolved graph
// or an *Error; there is no partial result.
func Parse(name string, data []byte, opts Options) (*File, error) {
	l := &loader{name: name, opts: opts, log: opts.logger(), ctx: context.Background()}
	return l.load(data)
}

type loader struct {
	name     string
	opts     Options
	log      *slog.Logger
	ctx      context.Context
	warnings []Warning
}

func (l *loader) warn(rec int, msg string) {
	l.warnings = append(l.warnings, Warning{Record: rec, Msg: msg})
	l.log.LogAttrs(l.ctx, slog.LevelWarn, "nif: "+msg, slog.String("file", l.name), slog.Int("record", rec))
}

func (l *loader) fatal(kind ErrorKind, rec int, typeName string, err error) *Error {
	return newError(kind, l.name, rec, typeName, err)
}

// streamKind classifies an error raised while reading.
func streamKind(err error) ErrorKind {
	switch {
	case errors.Is(err, nifstream.ErrUnexpectedEOF):
		return KindStreamExhausted
	case errors.Is(err, ErrUnknownRecordType):
		return KindUnknownType
	default:
		return KindFormat
	}
}

func (l *loader) load(data []byte) (*File, error) {
	s := nifstream.New(data)
	h, err := parseHeader(s, &l.opts, l.warn)
	if err != nil {
		kind := KindFormat
		if errors.Is(err, ErrUnknownRecordType) {
			kind = KindUnknownType
		}
		return nil, l.fatal(kind, -1, "", err)
	}
	ctx := h.Context()
	rd := newReader(s, ctx, h.Strings, l.opts.Charset)
	trace := !IsSupported(h.Version) && l.log.Enabled(l.ctx, slog.LevelDebug)
	separators := h.Version >= V10_0_0_0 && h.Version < V10_2_0_0

	records := make([]Record, h.NumRecords)
	for i := range records {
		var typeName string
		if h.Version >= V5_0_0_1 {
			typeName = h.RecordTypes[h.RecordTypeIndex[i]]
		} else {
			typeName = s.LengthPrefixedString()
			if err := s.Err(); err != nil {
				return nil, l.fatal(KindStreamExhausted, i, "", err)
			}
		}
		if separators && !strings.HasPrefix(typeName, "bhk") {
			if sep := s.Int32(); sep != 0 {
				l.warn(i, fmt.Sprintf("record separator is %d, not 0", sep))
			}
		}

		rec, err := Create(typeName)
		if err != nil {
			return nil, l.fatal(KindUnknownType, i, typeName, err)
		}
		b := rec.base()
		b.stamp(b.typ, typeName, i, ctx, h.Strings)

		start := s.Tell()
		if trace {
			l.log.LogAttrs(l.ctx, slog.LevelDebug, "nif: reading record",
				slog.String("file", l.name), slog.Int("record", i),
				slog.String("type", typeName), slog.Int("offset", start))
		}
		rec.read(rd)
		if err := s.Err(); err != nil {
			return nil, l.fatal(streamKind(err), i, typeName, err)
		}
		if h.RecordSizes != nil {
			if got, want := s.Tell()-start, int(h.RecordSizes[i]); got != want {
				l.warn(i, fmt.Sprintf("%s read %d bytes, header says %d", typeName, got, want))
			}
		}
		records[i] = rec
	}

	var roots RefList[Record]
	if s.Remaining() == 0 {
		if l.opts.Strict {
			return nil, l.fatal(KindStreamExhausted, -1, "", fmt.Errorf("footer: %w", nifstream.ErrUnexpectedEOF))
		}
		l.warn(-1, "missing footer, file has no roots")
	} else {
		roots.read(rd)
		if err := s.Err(); err != nil {
			return nil, l.fatal(streamKind(err), -1, "", fmt.Errorf("footer: %w", err))
		}
		for i, root := range roots {
			if root.Empty() {
				l.warn(-1, fmt.Sprintf("root %d is empty", i))
			}
		}
		if n := s.Remaining(); n > 0 {
			if l.opts.Strict {
				return nil, l.fatal(KindFormat, -1, "", fmt.Errorf("%w: %d bytes", ErrTrailingData, n))
			}
			l.warn(-1, fmt.Sprintf("%d bytes of trailing data", n))
		}
	}

	rs := &resolver{records: records}
	for i, rec := range records {
		rec.resolve(rs)
		if rs.err != nil {
			return nil, l.fatal(KindGraphConsistency, i, rec.TypeName(), rs.err)
		}
	}
	roots.resolve(rs)
	if rs.err != nil {
		return nil, l.fatal(KindGraphConsistency, -1, "", fmt.Errorf("roots: %w", rs.err))
	}

	return &File{
		name:        l.name,
		header:      h,
		records:     records,
		roots:       roots,
		warnings:    l.warnings,
		useSkinning: rs.useSkinning,
	}, nil
}
