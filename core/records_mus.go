package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// RawRecordMUS serializes RawRecord values in MUS format.
// Fields are written in declaration order.
var RawRecordMUS = rawRecordMUS{}

type rawRecordMUS struct{}

func (s rawRecordMUS) Marshal(v RawRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.Code, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Sector, bs[n:])
	n += ord.String.Marshal(v.Delay, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	return n + ord.String.Marshal(v.Price, bs[n:])
}

func (s rawRecordMUS) Unmarshal(bs []byte) (v RawRecord, n int, err error) {
	fields := []*string{&v.Code, &v.Name, &v.Sector, &v.Delay, &v.Description, &v.Price}
	var n1 int
	for _, field := range fields {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s rawRecordMUS) Size(v RawRecord) (size int) {
	size = ord.String.Size(v.Code)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Sector)
	size += ord.String.Size(v.Delay)
	size += ord.String.Size(v.Description)
	return size + ord.String.Size(v.Price)
}

// SnapshotInfoMUS serializes SnapshotInfo values in MUS format.
var SnapshotInfoMUS = snapshotInfoMUS{}

type snapshotInfoMUS struct{}

func (s snapshotInfoMUS) Marshal(v SnapshotInfo, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Fingerprint), bs)
	n += varint.Int.Marshal(v.Count, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	return n + varint.Int64.Marshal(v.ImportedAt, bs[n:])
}

func (s snapshotInfoMUS) Unmarshal(bs []byte) (v SnapshotInfo, n int, err error) {
	fingerprint, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Fingerprint = ID(fingerprint)
	var n1 int
	v.Count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ImportedAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s snapshotInfoMUS) Size(v SnapshotInfo) (size int) {
	size = varint.Uint64.Size(uint64(v.Fingerprint))
	size += varint.Int.Size(v.Count)
	size += ord.String.Size(v.Source)
	return size + varint.Int64.Size(v.ImportedAt)
}
