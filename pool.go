package md2doc

import (
	"errors"
	"runtime"
	"sync"
)

// ErrPoolClosed is returned by Acquire on a closed pool.
var ErrPoolClosed = errors.New("converter pool is closed")

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent conversions; each holds a parsed markup
	// tree in memory while projecting.
	MaxPoolSize = 16

	// cpuDivisor leaves headroom for sink I/O.
	cpuDivisor = 2
)

// ConverterPool manages a pool of Converter instances for parallel batch
// processing. A single conversion stays single-threaded; the pool only
// parallelizes across independent documents. Converters are created
// lazily on first acquire.
type ConverterPool struct {
	size    int
	opts    []Option
	sem     chan *Converter
	mu      sync.Mutex
	created int
	closed  bool
}

// NewConverterPool creates a pool with capacity for n Converter
// instances, each built with the given options. Converters are created
// lazily when acquired, not at pool creation.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < 1 {
		n = 1
	}

	return &ConverterPool{
		size: n,
		opts: opts,
		sem:  make(chan *Converter, n),
	}
}

// Acquire gets a converter from the pool, creating one if capacity
// allows. Blocks if all converters are in use; returns ErrPoolClosed
// once the pool is closed.
func (p *ConverterPool) Acquire() (*Converter, error) {
	// Try to get an existing converter (non-blocking)
	select {
	case conv, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return conv, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create the new converter outside the lock
		conv, err := NewConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		return conv, nil
	}
	p.mu.Unlock()

	// All converters created, wait for one to be released
	conv, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return conv, nil
}

// Release returns a converter to the pool. Releases after Close are
// dropped.
func (p *ConverterPool) Release(conv *Converter) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- conv
}

// Close shuts the pool down: idle converters are discarded, blocked and
// subsequent Acquire calls return ErrPoolClosed, and later Releases are
// dropped. Converters hold no external resources; Close performs no
// per-converter cleanup. Closing twice is a no-op.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	p.mu.Unlock()

	// Drain converters buffered before the close.
	for range p.sem {
	}
	return nil
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int { return p.size }

// ResolvePoolSize determines the pool size for batch conversion.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate from GOMAXPROCS (adjusted by automaxprocs in
	// containers).
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
