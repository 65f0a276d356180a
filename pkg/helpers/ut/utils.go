package ut

import "sync/atomic"

//CreateUint64IDGenerator returns a goroutine-safe generator of sequential IDs starting from 1.
func CreateUint64IDGenerator() func() uint64 {
	var counter atomic.Uint64
	return func() uint64 {
		return counter.Add(1)
	}
}
