package dump

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"

	"github.com/hupe1980/pathnode/internal/conv"
	"github.com/hupe1980/pathnode/internal/hash"
)

// Version is the current format version.
const Version = 1

const headerSize = 4 + 1 + 1 + 16 + 5*4 + 3*4

// maxPayload bounds the stored and raw payload sizes accepted by Read.
const maxPayload = 1 << 28

var magic = [4]byte{'P', 'N', 'D', 'M'}

var (
	// ErrBadMagic is returned when the input is not a node-list dump.
	ErrBadMagic = errors.New("dump: bad magic")
	// ErrUnsupportedVersion is returned for dumps written by a newer format.
	ErrUnsupportedVersion = errors.New("dump: unsupported version")
	// ErrUnsupportedCompression is returned for an unknown codec byte.
	ErrUnsupportedCompression = errors.New("dump: unsupported compression")
	// ErrChecksumMismatch is returned when the payload CRC does not match.
	ErrChecksumMismatch = errors.New("dump: checksum mismatch")
	// ErrCorrupt is returned when the payload is structurally invalid.
	ErrCorrupt = errors.New("dump: corrupt payload")
)

// State is the membership class of a node at dump time.
type State uint8

const (
	// StateDetached nodes are allocated but tracked by no set: popped and
	// not yet re-inserted, or released through FoundBestNode.
	StateDetached State = iota
	// StateUncommitted is the single pending node from CreateNewNode.
	StateUncommitted
	// StateOpen nodes are in the open set.
	StateOpen
	// StateClosed nodes are in the closed set.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDetached:
		return "detached"
	case StateUncommitted:
		return "uncommitted"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Header describes a snapshot.
type Header struct {
	SearchID    uuid.UUID
	Total       uint32 // nodes allocated
	OpenCount   uint32
	ClosedCount uint32
	Uncommitted uint32 // handle of the pending node, 0 if none
	ChunkSize   uint32
	Compression Compression // codec used for the stored payload
}

// Snapshot is the decoded form of a dump.
type Snapshot struct {
	Header
	Open    *roaring.Bitmap
	Closed  *roaring.Bitmap
	Records [][]byte // one per handle (Records[h-1]) or empty
}

// New creates an empty snapshot for the given search.
func New(searchID uuid.UUID) *Snapshot {
	return &Snapshot{
		Header: Header{SearchID: searchID},
		Open:   roaring.New(),
		Closed: roaring.New(),
	}
}

// StateOf returns the membership class of handle h.
func (s *Snapshot) StateOf(h uint32) State {
	switch {
	case s.Open.Contains(h):
		return StateOpen
	case s.Closed.Contains(h):
		return StateClosed
	case h != 0 && h == s.Uncommitted:
		return StateUncommitted
	default:
		return StateDetached
	}
}

// Record returns the encoded node for handle h, if records were written.
func (s *Snapshot) Record(h uint32) ([]byte, bool) {
	if h == 0 || int(h) > len(s.Records) {
		return nil, false
	}
	return s.Records[h-1], true
}

type writeOptions struct {
	compression Compression
}

// WriteOption configures Write.
type WriteOption func(*writeOptions)

// WithCompression selects the payload codec. The default is ZSTD.
func WithCompression(c Compression) WriteOption {
	return func(o *writeOptions) {
		o.compression = c
	}
}

// Write encodes s to w.
func Write(w io.Writer, s *Snapshot, opts ...WriteOption) error {
	o := writeOptions{compression: CompressionZSTD}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	raw, err := s.encodePayload()
	if err != nil {
		return err
	}
	stored, codec, err := compress(raw, o.compression)
	if err != nil {
		return fmt.Errorf("dump: compress: %w", err)
	}

	rawSize, err := conv.IntToUint32(len(raw))
	if err != nil {
		return fmt.Errorf("dump: payload too large: %w", err)
	}
	storedSize, err := conv.IntToUint32(len(stored))
	if err != nil {
		return fmt.Errorf("dump: payload too large: %w", err)
	}

	hdr := make([]byte, 0, headerSize)
	hdr = append(hdr, magic[:]...)
	hdr = append(hdr, Version, byte(codec))
	hdr = append(hdr, s.SearchID[:]...)
	hdr = binary.LittleEndian.AppendUint32(hdr, s.Total)
	hdr = binary.LittleEndian.AppendUint32(hdr, s.OpenCount)
	hdr = binary.LittleEndian.AppendUint32(hdr, s.ClosedCount)
	hdr = binary.LittleEndian.AppendUint32(hdr, s.Uncommitted)
	hdr = binary.LittleEndian.AppendUint32(hdr, s.ChunkSize)
	hdr = binary.LittleEndian.AppendUint32(hdr, rawSize)
	hdr = binary.LittleEndian.AppendUint32(hdr, storedSize)
	hdr = binary.LittleEndian.AppendUint32(hdr, hash.CRC32C(stored))

	if _, err := w.Write(hdr); err != nil {
		return err
	}
	_, err = w.Write(stored)
	return err
}

func (s *Snapshot) encodePayload() ([]byte, error) {
	var buf []byte
	for _, rb := range []*roaring.Bitmap{s.Open, s.Closed} {
		if rb == nil {
			rb = roaring.New()
		}
		b, err := rb.ToBytes()
		if err != nil {
			return nil, fmt.Errorf("dump: encode bitmap: %w", err)
		}
		buf = binary.AppendUvarint(buf, uint64(len(b)))
		buf = append(buf, b...)
	}
	buf = binary.AppendUvarint(buf, uint64(len(s.Records)))
	for _, rec := range s.Records {
		buf = binary.AppendUvarint(buf, uint64(len(rec)))
		buf = append(buf, rec...)
	}
	return buf, nil
}

// Read decodes a snapshot from r.
func Read(r io.Reader) (*Snapshot, error) {
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("dump: read header: %w", err)
	}
	if !bytes.Equal(hdr[:4], magic[:]) {
		return nil, ErrBadMagic
	}
	if hdr[4] != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, hdr[4])
	}
	codec := Compression(hdr[5])
	if codec > CompressionZSTD {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedCompression, hdr[5])
	}

	s := &Snapshot{}
	copy(s.SearchID[:], hdr[6:22])
	le := binary.LittleEndian
	s.Total = le.Uint32(hdr[22:])
	s.OpenCount = le.Uint32(hdr[26:])
	s.ClosedCount = le.Uint32(hdr[30:])
	s.Uncommitted = le.Uint32(hdr[34:])
	s.ChunkSize = le.Uint32(hdr[38:])
	s.Compression = codec
	rawSize := le.Uint32(hdr[42:])
	storedSize := le.Uint32(hdr[46:])
	checksum := le.Uint32(hdr[50:])

	if uint64(rawSize) > maxPayload || uint64(storedSize) > maxPayload {
		return nil, ErrCorrupt
	}

	// The buffer grows with the bytes actually read, not the declared size.
	crc := hash.NewCRC32C()
	stored, err := io.ReadAll(io.LimitReader(io.TeeReader(r, crc), int64(storedSize)))
	if err != nil {
		return nil, fmt.Errorf("dump: read payload: %w", err)
	}
	if len(stored) != int(storedSize) {
		return nil, fmt.Errorf("dump: read payload: %w", io.ErrUnexpectedEOF)
	}
	if crc.Sum32() != checksum {
		return nil, ErrChecksumMismatch
	}

	raw, err := decompress(stored, codec, int(rawSize))
	if err != nil {
		return nil, err
	}
	if err := s.decodePayload(raw); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Snapshot) decodePayload(buf []byte) error {
	next := func() ([]byte, error) {
		n, k := binary.Uvarint(buf)
		if k <= 0 {
			return nil, ErrCorrupt
		}
		size, err := conv.Uint64ToInt(n)
		if err != nil || size > len(buf)-k {
			return nil, ErrCorrupt
		}
		b := buf[k : k+size]
		buf = buf[k+size:]
		return b, nil
	}

	bitmaps := make([]*roaring.Bitmap, 2)
	for i := range bitmaps {
		b, err := next()
		if err != nil {
			return err
		}
		rb := roaring.New()
		if err := rb.UnmarshalBinary(b); err != nil {
			return errors.Join(ErrCorrupt, err)
		}
		bitmaps[i] = rb
	}
	s.Open, s.Closed = bitmaps[0], bitmaps[1]

	if s.Open.GetCardinality() != uint64(s.OpenCount) || s.Closed.GetCardinality() != uint64(s.ClosedCount) {
		return ErrCorrupt
	}

	count, k := binary.Uvarint(buf)
	if k <= 0 {
		return ErrCorrupt
	}
	buf = buf[k:]
	if count != 0 && count != uint64(s.Total) {
		return ErrCorrupt
	}
	if count > 0 {
		s.Records = make([][]byte, count)
		for i := range s.Records {
			rec, err := next()
			if err != nil {
				return err
			}
			s.Records[i] = rec
		}
	}
	if len(buf) != 0 {
		return ErrCorrupt
	}
	return nil
}
