// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package blocklog implements the append-only block log and its
// companion .index file: a sequence of
// [u32 length, block_serialized_bytes, u64 byte_offset] records, where the
// trailing offset is the record's own start offset, with O(1) seek by
// height via the index file, in the manner of other append-only
// freezer/segment-file idiom (turbo/snapshotsync writes fixed-format
// segment files with a side index for O(1) seek); this is the same shape
// reduced to a single flat file with a fixed record layout.
package blocklog

import (
	"encoding/binary"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// ErrCorrupt is returned when a requested height is outside the index or
// the record at an indexed offset cannot be read.
var ErrCorrupt = errors.New("blocklog: corrupt entry")

// Entry is one logically-appended block: its wire bytes (opaque to this
// package — serialization lives with core/types/core/chain) and the
// height it was appended at.
type Entry struct {
	Num   uint32
	Bytes []byte
}

// Log is the append-only block log plus its offset index. Not safe for
// concurrent writers; the engine only ever appends from the single
// mutating thread.
type Log struct {
	mu      sync.RWMutex
	dataF   *os.File
	idxF    *os.File
	offsets []uint64 // offsets[i] = byte offset of block i+1 (1-indexed heights)
}

// Open opens (creating if absent) the block log at dataPath and its
// companion dataPath+".index", rebuilding the in-memory offset table from
// the index file's contents.
func Open(dataPath string) (*Log, error) {
	dataF, err := os.OpenFile(dataPath, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "blocklog: open data file")
	}
	idxF, err := os.OpenFile(dataPath+".index", os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		dataF.Close()
		return nil, errors.Wrap(err, "blocklog: open index file")
	}
	l := &Log{dataF: dataF, idxF: idxF}
	if err := l.loadIndex(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Log) loadIndex() error {
	stat, err := l.idxF.Stat()
	if err != nil {
		return errors.Wrap(err, "blocklog: stat index")
	}
	n := stat.Size() / 8
	l.offsets = make([]uint64, 0, n)
	buf := make([]byte, 8)
	for i := int64(0); i < n; i++ {
		if _, err := l.idxF.ReadAt(buf, i*8); err != nil {
			return errors.Wrap(err, "blocklog: read index")
		}
		l.offsets = append(l.offsets, binary.BigEndian.Uint64(buf))
	}
	return nil
}

// Head returns the last appended entry's height, or 0 if the log is empty.
func (l *Log) Head() uint32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint32(len(l.offsets))
}

// Append writes one new block to the end of the data file and records its
// offset in the index, advancing Head by one.
func (l *Log) Append(blockBytes []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	off, err := l.dataF.Seek(0, io.SeekEnd)
	if err != nil {
		return errors.Wrap(err, "blocklog: seek end")
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(blockBytes)))
	if _, err := l.dataF.Write(lenBuf[:]); err != nil {
		return errors.Wrap(err, "blocklog: write length")
	}
	if _, err := l.dataF.Write(blockBytes); err != nil {
		return errors.Wrap(err, "blocklog: write block")
	}
	var offBuf [8]byte
	binary.BigEndian.PutUint64(offBuf[:], uint64(off))
	if _, err := l.dataF.Write(offBuf[:]); err != nil {
		return errors.Wrap(err, "blocklog: write record offset")
	}
	if _, err := l.idxF.Write(offBuf[:]); err != nil {
		return errors.Wrap(err, "blocklog: write index")
	}
	l.offsets = append(l.offsets, uint64(off))
	return nil
}

// ReadBlock reads the block stored at the given data-file byte offset.
func (l *Log) ReadBlock(offset uint64) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var lenBuf [4]byte
	if _, err := l.dataF.ReadAt(lenBuf[:], int64(offset)); err != nil {
		return nil, errors.Wrap(ErrCorrupt, err.Error())
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	if _, err := l.dataF.ReadAt(buf, int64(offset)+4); err != nil {
		return nil, errors.Wrap(ErrCorrupt, err.Error())
	}
	return buf, nil
}

// ReadBlockByNum seeks by height in O(1) via the index table. num is
// 1-indexed, matching block height.
func (l *Log) ReadBlockByNum(num uint32) ([]byte, error) {
	l.mu.RLock()
	if num == 0 || int(num) > len(l.offsets) {
		l.mu.RUnlock()
		return nil, errors.Wrapf(ErrCorrupt, "height %d out of range (head %d)", num, len(l.offsets))
	}
	off := l.offsets[num-1]
	l.mu.RUnlock()
	return l.ReadBlock(off)
}

// Flush fsyncs both files so a crash after this point cannot lose a
// previously-Appended block, matching the engine's "irreversible means
// durable" contract.
func (l *Log) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.dataF.Sync(); err != nil {
		return err
	}
	return l.idxF.Sync()
}

func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err1 := l.dataF.Close()
	err2 := l.idxF.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
