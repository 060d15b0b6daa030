package jdatetime

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

const dateHashSalt = 101

func hashInts(vals ...int) uint64 {
	var buf [8]byte
	d := xxhash.New()
	for _, v := range vals {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
