package highscore

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// ErrCorrupt is returned when a score file cannot be decoded.
var ErrCorrupt = errors.New("highscore: corrupt score file")

// Timestamps are stored as 100ns ticks since 0001-01-01 UTC with the kind
// in the top two bits.
const (
	ticksAtUnixEpoch = 621355968000000000
	ticksPerSecond   = 10000000
	kindUTC          = int64(0x4000000000000000)
	ticksMask        = int64(0x3FFFFFFFFFFFFFFF)
	maxNameBytes     = 1 << 16
)

func toTicks(t time.Time) int64 {
	return t.UTC().UnixNano()/100 + ticksAtUnixEpoch
}

func fromTicks(v int64) time.Time {
	d := (v & ticksMask) - ticksAtUnixEpoch
	return time.Unix(d/ticksPerSecond, (d%ticksPerSecond)*100).UTC()
}

// Encode writes entries in the score file layout: a count byte, then per
// entry an int64 timestamp, an int32 score and a uvarint length-prefixed
// UTF-8 name, all little-endian.
func Encode(w io.Writer, entries []Entry) error {
	if len(entries) > math.MaxUint8 {
		return fmt.Errorf("highscore: too many entries (%d)", len(entries))
	}
	bw := bufio.NewWriter(w)
	if err := bw.WriteByte(byte(len(entries))); err != nil {
		return err
	}

	var buf [binary.MaxVarintLen64]byte
	for _, e := range entries {
		if err := binary.Write(bw, binary.LittleEndian, toTicks(e.Time)|kindUTC); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, int32(e.Score)); err != nil { //#nosec G115 -- scores fit in int32
			return err
		}
		n := binary.PutUvarint(buf[:], uint64(len(e.Name)))
		if _, err := bw.Write(buf[:n]); err != nil {
			return err
		}
		if _, err := bw.WriteString(e.Name); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads entries written by Encode. An empty input is an empty list.
// Anything truncated or malformed yields an error wrapping ErrCorrupt.
func Decode(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)
	count, err := br.ReadByte()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	entries := make([]Entry, 0, count)
	for i := range int(count) {
		var ticks int64
		var score int32
		if err := binary.Read(br, binary.LittleEndian, &ticks); err != nil {
			return nil, fmt.Errorf("%w: entry %d timestamp: %v", ErrCorrupt, i, err)
		}
		if err := binary.Read(br, binary.LittleEndian, &score); err != nil {
			return nil, fmt.Errorf("%w: entry %d score: %v", ErrCorrupt, i, err)
		}
		n, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d name length: %v", ErrCorrupt, i, err)
		}
		if n > maxNameBytes {
			return nil, fmt.Errorf("%w: entry %d name length %d", ErrCorrupt, i, n)
		}
		name := make([]byte, n)
		if _, err := io.ReadFull(br, name); err != nil {
			return nil, fmt.Errorf("%w: entry %d name: %v", ErrCorrupt, i, err)
		}
		entries = append(entries, Entry{Time: fromTicks(ticks), Score: int(score), Name: string(name)})
	}
	return entries, nil
}
