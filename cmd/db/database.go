package db

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Database is a set of named queues sharing one allocator. Its methods are
// safe for concurrent use.
type Database struct {
	mu     sync.Mutex
	queues map[string]*Queue
	alloc  Allocator
}

type memoryUser interface {
	Used() int
}

func NewDatabase(alloc Allocator) *Database {
	if alloc == nil {
		alloc = &Unbounded{}
	}
	return &Database{queues: make(map[string]*Queue), alloc: alloc}
}

func (d *Database) FlushAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, q := range d.queues {
		q.Free()
	}
	d.queues = make(map[string]*Queue)
}

func (d *Database) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys := make([]string, 0, len(d.queues))
	for k := range d.queues {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func (d *Database) DbSize() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queues)
}

// UsedMemory reports the bytes reserved through the allocator, or -1 when the
// allocator does not track usage.
func (d *Database) UsedMemory() int {
	if u, ok := d.alloc.(memoryUser); ok {
		return u.Used()
	}
	return -1
}

func (d *Database) Create(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, found := d.queues[name]; found {
		return errors.Wrapf(ErrKeyExists, "create '%s'", name)
	}

	_, err := d.createQueue(name)
	return err
}

func (d *Database) LPush(name string, values ...string) (int, error) {
	return d.push(name, values, (*Queue).InsertHead)
}

func (d *Database) RPush(name string, values ...string) (int, error) {
	return d.push(name, values, (*Queue).InsertTail)
}

// LPop removes the head of the named queue. A limit above zero bounds the
// returned value to limit-1 bytes.
func (d *Database) LPop(name string, limit int) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	q, found := d.queues[name]
	if !found || q.Size() == 0 {
		return "", false, nil
	}

	if limit <= 0 {
		value, err := q.PopHead()
		return value, err == nil, err
	}

	buf := make([]byte, limit)
	n, err := q.RemoveHead(buf)
	if err != nil {
		return "", false, err
	}
	return string(buf[:n]), true, nil
}

func (d *Database) LLen(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queues[name].Size()
}

// LRange returns the values between start and stop inclusive. Negative
// indexes count from the tail.
func (d *Database) LRange(name string, start, stop int) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	q := d.queues[name]
	size := q.Size()
	if start < 0 {
		start += size
	}
	if stop < 0 {
		stop += size
	}
	if start < 0 {
		start = 0
	}
	if stop >= size {
		stop = size - 1
	}
	if size == 0 || start > stop {
		return []string{}
	}

	out := make([]string, 0, stop-start+1)
	i := 0
	q.Each(func(v string) bool {
		if i >= start {
			out = append(out, v)
		}
		i++
		return i <= stop
	})
	return out
}

func (d *Database) Reverse(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	q, found := d.queues[name]
	if found {
		q.Reverse()
	}
	return found
}

func (d *Database) Sort(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	q, found := d.queues[name]
	if found {
		q.Sort()
	}
	return found
}

func (d *Database) Del(names ...string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	var deleted int
	for _, name := range names {
		q, found := d.queues[name]
		if !found {
			continue
		}
		q.Free()
		delete(d.queues, name)
		deleted++
	}
	return deleted
}

func (d *Database) push(name string, values []string, insert func(*Queue, string) error) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	q, found := d.queues[name]
	if !found {
		var err error
		if q, err = d.createQueue(name); err != nil {
			return 0, err
		}
	}

	for _, v := range values {
		if err := insert(q, v); err != nil {
			return q.Size(), errors.Wrapf(err, "push '%s'", name)
		}
	}
	return q.Size(), nil
}

func (d *Database) createQueue(name string) (*Queue, error) {
	q, err := NewQueueWith(d.alloc)
	if err != nil {
		return nil, errors.Wrapf(err, "create '%s'", name)
	}

	d.queues[name] = q
	return q, nil
}
