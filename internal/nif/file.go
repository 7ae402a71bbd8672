package nif

import "fmt"

// File is a fully loaded and resolved record graph. It is never modified
// after Load returns and may be shared between goroutines.
type File struct {
	name        string
	header      *Header
	records     []Record
	roots       RefList[Record]
	warnings    []Warning
	useSkinning bool
}

// Name returns the name the file was loaded under.
func (f *File) Name() string { return f.name }

// Header returns the parsed file header.
func (f *File) Header() *Header { return f.header }

func (f *File) Version() Version      { return f.header.Version }
func (f *File) UserVersion() uint32   { return f.header.UserVersion }
func (f *File) BethVersion() uint32   { return f.header.BethVersion }
func (f *File) NumRecords() int       { return len(f.records) }
func (f *File) Warnings() []Warning   { return f.warnings }
func (f *File) UsesSkinning() bool    { return f.useSkinning }
func (f *File) Strings() *StringTable { return f.header.Strings }

// Record returns record i. Repeated calls return the same record.
func (f *File) Record(i int) (Record, error) {
	if i < 0 || i >= len(f.records) {
		return nil, fmt.Errorf("nif: %s: %w: %d, file has %d records", f.name, ErrDanglingRef, i, len(f.records))
	}
	return f.records[i], nil
}

// Records returns the records in file order.
func (f *File) Records() []Record {
	return append([]Record(nil), f.records...)
}

// Roots returns the footer's root references, empty ones included.
func (f *File) Roots() RefList[Record] {
	return append(RefList[Record](nil), f.roots...)
}

// RootRecords returns the non-empty roots.
func (f *File) RootRecords() []Record {
	return f.roots.Records()
}

// RecordsOfType returns the records with tag t in file order.
func (f *File) RecordsOfType(t RecordType) []Record {
	var out []Record
	for _, rec := range f.records {
		if rec.Type() == t {
			out = append(out, rec)
		}
	}
	return out
}
