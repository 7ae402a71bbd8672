package nif

import "fmt"

// resolver carries the post phase: the record sequence references are
// resolved against and the first failure.
type resolver struct {
	records     []Record
	err         error
	useSkinning bool
}

// lookup returns record idx, failing with ErrDanglingRef when it does not exist.
func (rs *resolver) lookup(idx int32) Record {
	if idx < 0 || int(idx) >= len(rs.records) {
		rs.fail(fmt.Errorf("%w: %d, file has %d records", ErrDanglingRef, idx, len(rs.records)))
		return nil
	}
	return rs.records[idx]
}

func (rs *resolver) fail(err error) {
	if rs.err == nil {
		rs.err = err
	}
}
