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

package blocklog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendAndReadByNum(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(filepath.Join(dir, "block_log"))
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Append([]byte("block-1")))
	require.NoError(t, l.Append([]byte("block-2")))
	require.Equal(t, uint32(2), l.Head())

	b1, err := l.ReadBlockByNum(1)
	require.NoError(t, err)
	require.Equal(t, "block-1", string(b1))

	b2, err := l.ReadBlockByNum(2)
	require.NoError(t, err)
	require.Equal(t, "block-2", string(b2))

	_, err = l.ReadBlockByNum(3)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestReopenRebuildsIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "block_log")
	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Append([]byte("a")))
	require.NoError(t, l.Append([]byte("bb")))
	require.NoError(t, l.Flush())
	require.NoError(t, l.Close())

	l2, err := Open(path)
	require.NoError(t, err)
	defer l2.Close()
	require.Equal(t, uint32(2), l2.Head())
	b, err := l2.ReadBlockByNum(2)
	require.NoError(t, err)
	require.Equal(t, "bb", string(b))
}
