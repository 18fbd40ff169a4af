package concurrency

import "sync"

const (
	// DefaultMax default max
	DefaultMax = 256
)

// DefaultGoLimit default go limit, max:256
var DefaultGoLimit = NewGoLimit(DefaultMax)

// GoLimit go limit
type GoLimit struct {
	ch chan int
}

// NewGoLimit new go limit
func NewGoLimit(max int) *GoLimit {
	return &GoLimit{
		ch: make(chan int, max),
	}
}

// Add add num
func (g *GoLimit) Add() {
	g.ch <- 1
}

// Done remove num
func (g *GoLimit) Done() {
	<-g.ch
}

// Close close chan
func (g *GoLimit) Close() {
	close(g.ch)
}

// KeyedLocker serializes work per key. Operations against different keys
// proceed in parallel, operations against the same key are serialized.
type KeyedLocker struct {
	mux   sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedLocker new keyed locker
func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{
		locks: map[string]*sync.Mutex{},
	}
}

// Lock lock the given key
func (l *KeyedLocker) Lock(key string) {
	l.mux.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mux.Unlock()

	m.Lock()
}

// Unlock unlock the given key
func (l *KeyedLocker) Unlock(key string) {
	l.mux.Lock()
	m, ok := l.locks[key]
	l.mux.Unlock()

	if ok {
		m.Unlock()
	}
}
