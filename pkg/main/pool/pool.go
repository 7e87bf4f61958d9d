package pool

// Poolobj is a bounded free list of *t. Unlike sync.Pool it never drops
// objects behind the caller's back, which keeps scratch buffers for the
// list parsers warm across a whole file.
type Poolobj[t any] struct {
	objs chan *t
	// constructor runs for every newly created object.
	constructor func(*t)
	// destructor runs on Put. Returning true discards the object.
	destructor func(*t) bool
}

// Get retrieves an object from the pool or creates a new one if none are
// available.
func (p *Poolobj[t]) Get() *t {
	select {
	case obj := <-p.objs:
		return obj
	default:
		return p.NewObj()
	}
}

// NewObj creates a new object of type t, initialised by the constructor when
// one is set. The object is not tracked by the pool.
func (p *Poolobj[t]) NewObj() *t {
	var bo t
	if p.constructor != nil {
		p.constructor(&bo)
	}
	return &bo
}

// Put returns an object to the pool. It reports whether the object was kept;
// nil objects, objects rejected by the destructor and objects arriving at a
// full pool are dropped.
func (p *Poolobj[t]) Put(bo *t) bool {
	if bo == nil {
		return false
	}
	if p.destructor != nil && p.destructor(bo) {
		return false
	}
	select {
	case p.objs <- bo:
		return true
	default:
		return false
	}
}

// Len returns the number of idle objects held by the pool.
func (p *Poolobj[t]) Len() int {
	return len(p.objs)
}

// NewPool creates a new Poolobj.
//
// maxsize is the maximum number of idle objects kept. initcreate objects are
// created up front. constructor, if non-nil, initialises new objects.
// destructor, if non-nil, resets objects on Put and may reject them.
func NewPool[t any](
	maxsize, initcreate int,
	constructor func(*t),
	destructor func(*t) bool,
) *Poolobj[t] {
	if maxsize < 0 {
		maxsize = 0
	}
	a := Poolobj[t]{
		objs:        make(chan *t, maxsize),
		constructor: constructor,
		destructor:  destructor,
	}
	for range min(initcreate, maxsize) {
		a.objs <- a.NewObj()
	}
	return &a
}
