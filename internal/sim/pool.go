package sim

import "sync"

// FramePool recycles snapshot buffers for hot paths that take transient
// frames every tick, like the live view. Frames recorded into a Result
// must not come from a pool.
type FramePool struct {
	pool sync.Pool
	size int
}

func NewFramePool(bodies int) *FramePool {
	return &FramePool{
		size: bodies,
		pool: sync.Pool{
			New: func() interface{} {
				return make(Frame, bodies)
			},
		},
	}
}

func (p *FramePool) Get() Frame {
	return p.pool.Get().(Frame)
}

func (p *FramePool) Put(f Frame) {
	if len(f) == p.size {
		for i := range f {
			f[i] = BodyState{}
		}
		p.pool.Put(f)
	}
}

func (p *FramePool) GetAndCopy(src Frame) Frame {
	dst := p.Get()
	copy(dst, src)
	return dst
}
