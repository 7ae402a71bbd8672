package nif

import (
	"fmt"
	"strings"

	"nifgraph/internal/nifstream"
)

// maxHeaderLine bounds the scan for the identification line.
const maxHeaderLine = 256

// Header is everything the file states before its first record.
type Header struct {
	Magic       string
	Version     Version
	UserVersion uint32
	BethVersion uint32
	NumRecords  int

	// export info of Bethesda files
	Author        string
	ProcessScript string
	ExportScript  string
	MaxFilePath   string

	// RecordTypes is the type name table; RecordTypeIndex maps each record to
	// an entry. Both are empty before 5.0.0.1, where names are stored inline.
	RecordTypes     []string
	RecordTypeIndex []uint16
	// RecordSizes holds the byte size of every record from 20.2.0.5 on.
	RecordSizes []uint32

	Strings         *StringTable
	MaxStringLength uint32
	Groups          []uint32
}

// Context returns the version triple records of this file are read with.
func (h *Header) Context() Context {
	return Context{Version: h.Version, UserVersion: h.UserVersion, BethVersion: h.BethVersion}
}

// hasBethesdaBlock reports whether the header carries the Bethesda export info.
func hasBethesdaBlock(ver Version, user uint32) bool {
	if ver == V10_0_1_2 {
		return true
	}
	if user < 3 {
		return false
	}
	if ver == V20_0_0_5 || ver == V20_2_0_7 {
		return true
	}
	return ver >= V10_1_0_0 && ver <= V20_0_0_4 && user <= 11
}

// headerStage names the part of the header being read, for error messages.
type headerStage string

// parseHeader reads the header. Version problems are returned as they are met
// so the caller can decide about unsupported versions.
func parseHeader(s *nifstream.Stream, opts *Options, warn func(rec int, msg string)) (*Header, error) {
	h := &Header{Strings: &StringTable{}}
	stage := headerStage("identification")
	fail := func(err error) (*Header, error) {
		return nil, fmt.Errorf("header %s: %w", stage, err)
	}

	h.Magic = s.Line(maxHeaderLine)
	if err := s.Err(); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrBadMagic, err))
	}
	if !hasMagicPrefix(h.Magic) {
		return fail(fmt.Errorf("%w: %q", ErrBadMagic, truncate(h.Magic, 64)))
	}

	stage = "version"
	h.Version = Version(s.Uint32())
	if err := s.Err(); err != nil {
		return fail(err)
	}
	if !IsSupported(h.Version) {
		if !opts.LoadUnsupported {
			return fail(fmt.Errorf("%w: %s", ErrUnsupportedVersion, h.Version))
		}
		warn(-1, fmt.Sprintf("unsupported version %s, loading anyway", h.Version))
	}
	if h.Version >= V20_0_0_4 {
		if s.Uint8() == 0 {
			if err := s.Err(); err != nil {
				return fail(err)
			}
			return fail(ErrBigEndian)
		}
	}
	if h.Version > V10_0_1_8 {
		h.UserVersion = s.Uint32()
	}

	stage = "record count"
	count := s.Int32()
	if err := s.Err(); err != nil {
		return fail(err)
	}
	if count < 0 {
		return fail(fmt.Errorf("%w: %d records", ErrBadLength, count))
	}
	if opts.Limits.MaxRecords > 0 && int(count) > opts.Limits.MaxRecords {
		return fail(fmt.Errorf("%w: %d records, limit %d", ErrLimit, count, opts.Limits.MaxRecords))
	}
	h.NumRecords = int(count)

	if hasBethesdaBlock(h.Version, h.UserVersion) {
		stage = "export info"
		h.BethVersion = s.Uint32()
		h.Author = decodeText(opts.Charset, s.ShortString())
		if h.BethVersion > BethFO4 {
			s.Skip(4)
		}
		h.ProcessScript = decodeText(opts.Charset, s.ShortString())
		h.ExportScript = decodeText(opts.Charset, s.ShortString())
		if h.BethVersion == BethFO4 {
			h.MaxFilePath = decodeText(opts.Charset, s.ShortString())
		}
	}

	if h.Version >= V5_0_0_1 {
		stage = "record types"
		n := int(s.Uint16())
		if !s.Ensure(n, 4) {
			return fail(s.Err())
		}
		h.RecordTypes = make([]string, n)
		for i := range h.RecordTypes {
			h.RecordTypes[i] = s.LengthPrefixedString()
		}
		h.RecordTypeIndex = s.Uint16s(h.NumRecords)
		if err := s.Err(); err != nil {
			return fail(err)
		}
		for i, idx := range h.RecordTypeIndex {
			// the high bit marks records stored in a separate data stream
			idx &= 0x7FFF
			if int(idx) >= len(h.RecordTypes) {
				return fail(fmt.Errorf("%w: record %d uses type index %d of %d", ErrUnknownRecordType, i, idx, len(h.RecordTypes)))
			}
			h.RecordTypeIndex[i] = idx
		}
	}

	if h.Version >= V5_0_0_6 {
		if h.Version >= V20_2_0_5 {
			stage = "record sizes"
			h.RecordSizes = s.Uint32s(h.NumRecords)
		}
		if h.Version >= V20_1_0_1 {
			stage = "string table"
			n := int(s.Uint32())
			h.MaxStringLength = s.Uint32()
			if !s.Ensure(n, 4) {
				return fail(s.Err())
			}
			if opts.Limits.MaxStrings > 0 && n > opts.Limits.MaxStrings {
				return fail(fmt.Errorf("%w: %d strings, limit %d", ErrLimit, n, opts.Limits.MaxStrings))
			}
			h.Strings.strings = make([]string, n)
			for i := range h.Strings.strings {
				h.Strings.strings[i] = decodeText(opts.Charset, s.LengthPrefixedString())
			}
		}
		stage = "groups"
		h.Groups = s.Uint32s(int(s.Uint32()))
	}
	if err := s.Err(); err != nil {
		return fail(err)
	}
	return h, nil
}

func hasMagicPrefix(line string) bool {
	for _, p := range magicPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
