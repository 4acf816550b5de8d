package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the persistent types. The serializable
// surface is two small structs, so the serializers are written in the
// generated-code style rather than produced by a generator.

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (s idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (s idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// KnowledgeItemMUS serializes KnowledgeItem values.
var KnowledgeItemMUS = knowledgeItemMUS{}

type knowledgeItemMUS struct{}

func (s knowledgeItemMUS) Marshal(v KnowledgeItem, bs []byte) (n int) {
	n = ord.String.Marshal(v.Text, bs)
	n += ord.String.Marshal(v.Source, bs[n:])
	return n
}

func (s knowledgeItemMUS) Unmarshal(bs []byte) (v KnowledgeItem, n int, err error) {
	v.Text, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	var n1 int
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (s knowledgeItemMUS) Size(v KnowledgeItem) (size int) {
	size = ord.String.Size(v.Text)
	size += ord.String.Size(v.Source)
	return size
}

func (s knowledgeItemMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err := ord.String.Skip(bs[n:])
	n += n1
	return n, err
}

var (
	knowledgeItemSliceMUS = ord.NewSliceSer[KnowledgeItem](KnowledgeItemMUS)
	vectorMUS             = ord.NewSliceSer[float32](varint.Float32)
	vectorSliceMUS        = ord.NewSliceSer[[]float32](vectorMUS)
)

// IndexSnapshotMUS serializes IndexSnapshot values.
// Timestamps are stored with microsecond precision.
var IndexSnapshotMUS = indexSnapshotMUS{}

type indexSnapshotMUS struct{}

func (s indexSnapshotMUS) Marshal(v IndexSnapshot, bs []byte) (n int) {
	n = varint.Int.Marshal(v.Dimension, bs)
	n += IDMUS.Marshal(v.Fingerprint, bs[n:])
	n += knowledgeItemSliceMUS.Marshal(v.Items, bs[n:])
	n += vectorSliceMUS.Marshal(v.Vectors, bs[n:])
	n += varint.Int64.Marshal(v.CreatedAt.UnixMicro(), bs[n:])
	return n
}

func (s indexSnapshotMUS) Unmarshal(bs []byte) (v IndexSnapshot, n int, err error) {
	var n1 int
	v.Dimension, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Fingerprint, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Items, n1, err = knowledgeItemSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Vectors, n1, err = vectorSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	var micro int64
	micro, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.CreatedAt = time.UnixMicro(micro).UTC()
	return v, n, nil
}

func (s indexSnapshotMUS) Size(v IndexSnapshot) (size int) {
	size = varint.Int.Size(v.Dimension)
	size += IDMUS.Size(v.Fingerprint)
	size += knowledgeItemSliceMUS.Size(v.Items)
	size += vectorSliceMUS.Size(v.Vectors)
	size += varint.Int64.Size(v.CreatedAt.UnixMicro())
	return size
}

func (s indexSnapshotMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err := IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = knowledgeItemSliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = vectorSliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return n, err
}
