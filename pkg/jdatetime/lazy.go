package jdatetime

import "sync"

// lazy is a write-once cell filled by the first get.
type lazy[T any] struct {
	once sync.Once
	v    T
}

func (l *lazy[T]) get(compute func() T) T {
	if l == nil {
		return compute()
	}
	l.once.Do(func() { l.v = compute() })
	return l.v
}
