package pool

import (
	"strings"
	"testing"
)

func TestPoolObjGet(t *testing.T) {
	p := NewPool[string](5, 0, func(s *string) { *s = "initialized" }, nil)

	obj := p.Get()
	if *obj != "initialized" {
		t.Errorf("Expected initialized object, got %v", *obj)
	}

	for i := 0; i < 3; i++ {
		p.Put(obj)
		obj2 := p.Get()
		if obj != obj2 {
			t.Error("Expected same object reference from pool")
		}
	}
}

func TestPoolObjPut(t *testing.T) {
	destructorCalled := 0
	p := NewPool[int](3, 0, nil, func(i *int) bool {
		destructorCalled++
		return false
	})

	obj1 := p.Get()
	obj2 := p.Get()
	obj3 := p.Get()
	obj4 := p.Get()

	p.Put(obj1)
	p.Put(obj2)
	p.Put(obj3)
	if p.Put(obj4) {
		t.Error("Expected Put on a full pool to report false")
	}

	if p.Len() != 3 {
		t.Errorf("Expected pool size 3, got %d", p.Len())
	}

	if destructorCalled != 4 {
		t.Errorf("Expected destructor called 4 times, got %d", destructorCalled)
	}
}

func TestNewPoolInitCreate(t *testing.T) {
	t.Run("creates initial objects", func(t *testing.T) {
		constructorCalled := 0
		p := NewPool(5, 3, func(i *int) {
			constructorCalled++
			*i = constructorCalled
		}, nil)

		if constructorCalled != 3 {
			t.Errorf("Expected constructor called 3 times, got %d", constructorCalled)
		}
		if p.Len() != 3 {
			t.Errorf("Expected 3 objects in pool, got %d", p.Len())
		}
	})

	t.Run("caps initial objects at maxsize", func(t *testing.T) {
		p := NewPool[int](2, 10, nil, nil)
		if p.Len() != 2 {
			t.Errorf("Expected 2 objects in pool, got %d", p.Len())
		}
	})
}

func TestPoolObjDestructorTrue(t *testing.T) {
	p := NewPool[string](5, 0, nil, func(s *string) bool {
		return true
	})

	obj := p.Get()
	p.Put(obj)

	if p.Len() != 0 {
		t.Errorf("Expected empty pool when destructor returns true, got size %d", p.Len())
	}
}

func TestPoolObjNilPut(t *testing.T) {
	p := NewPool[string](5, 0, nil, nil)
	if p.Put(nil) {
		t.Error("Expected Put(nil) to report false")
	}

	if p.Len() != 0 {
		t.Error("Expected pool to ignore nil objects")
	}
}

func TestPoolBuilderReset(t *testing.T) {
	p := NewPool(2, 0, nil, func(b *strings.Builder) bool {
		b.Reset()
		return false
	})

	b := p.Get()
	b.WriteString("leftover")
	p.Put(b)

	again := p.Get()
	if again.Len() != 0 {
		t.Errorf("Expected reset builder, got %q", again.String())
	}
}
