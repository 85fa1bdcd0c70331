package db

import (
	"strings"

	"github.com/pkg/errors"
)

type qNode struct {
	value string
	next  *qNode
}

// Queue is a singly linked queue of strings. It owns a private copy of every
// value it stores. A Queue is not safe for concurrent use.
type Queue struct {
	head     *qNode
	tail     *qNode
	length   int
	alloc    Allocator
	released bool
}

var defaultAllocator = &Unbounded{}

func NewQueue() *Queue {
	q, _ := NewQueueWith(defaultAllocator)
	return q
}

// NewQueueWith creates an empty queue whose storage is accounted against a.
func NewQueueWith(a Allocator) (*Queue, error) {
	if a == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "new queue: nil allocator")
	}
	if err := a.Reserve(queueSize); err != nil {
		return nil, errors.Wrap(err, "new queue")
	}

	return &Queue{alloc: a}, nil
}

// Free releases every stored value and the queue itself. The queue must not
// be used afterwards.
func (q *Queue) Free() {
	if q == nil || q.released {
		return
	}

	for q.head != nil {
		node := q.unlinkHead()
		q.release(node)
	}
	q.alloc.Release(queueSize)
	q.released = true
}

func (q *Queue) InsertHead(s string) error {
	node, err := q.newNode(s)
	if err != nil {
		return errors.Wrap(err, "insert head")
	}

	q.link(node, true)
	return nil
}

func (q *Queue) InsertTail(s string) error {
	node, err := q.newNode(s)
	if err != nil {
		return errors.Wrap(err, "insert tail")
	}

	q.link(node, false)
	return nil
}

// RemoveHead removes the first value and copies it into buf as a
// zero-terminated byte string, truncated to len(buf)-1 bytes. It returns the
// number of value bytes copied.
func (q *Queue) RemoveHead(buf []byte) (int, error) {
	if q == nil || buf == nil {
		return 0, errors.Wrap(ErrInvalidArgument, "remove head")
	}
	q.mustBeLive()
	if q.length == 0 {
		return 0, errors.Wrap(ErrEmptyQueue, "remove head")
	}

	node := q.unlinkHead()
	var n int
	if len(buf) > 0 {
		n = copy(buf[:len(buf)-1], node.value)
		buf[n] = 0
	}
	q.release(node)
	return n, nil
}

// PopHead removes the first value and returns all of it.
func (q *Queue) PopHead() (string, error) {
	if q == nil {
		return "", errors.Wrap(ErrInvalidArgument, "pop head")
	}
	q.mustBeLive()
	if q.length == 0 {
		return "", errors.Wrap(ErrEmptyQueue, "pop head")
	}

	node := q.unlinkHead()
	q.release(node)
	return node.value, nil
}

func (q *Queue) PeekHead() (string, bool) {
	if q.Size() == 0 {
		return "", false
	}
	return q.head.value, true
}

func (q *Queue) PeekTail() (string, bool) {
	if q.Size() == 0 {
		return "", false
	}
	return q.tail.value, true
}

func (q *Queue) Size() int {
	if q == nil {
		return 0
	}
	q.mustBeLive()
	return q.length
}

// Each calls fn for every value from head to tail until fn returns false.
func (q *Queue) Each(fn func(string) bool) {
	if q.Size() == 0 {
		return
	}
	for cur := q.head; cur != nil; cur = cur.next {
		if !fn(cur.value) {
			return
		}
	}
}

func (q *Queue) Values() []string {
	values := make([]string, 0, q.Size())
	q.Each(func(v string) bool {
		values = append(values, v)
		return true
	})
	return values
}

// Reverse reverses the queue in place without allocating.
func (q *Queue) Reverse() {
	if q.Size() < 2 {
		return
	}

	var prev *qNode
	cur := q.head
	q.tail = q.head
	for cur != nil {
		next := cur.next
		cur.next = prev
		prev = cur
		cur = next
	}
	q.head = prev
}

// Sort orders the values ascending by byte-wise comparison. Equal values
// keep their relative order.
func (q *Queue) Sort() {
	if q.Size() < 2 {
		return
	}

	q.head = mergeSort(q.head)
	tail := q.head
	for tail.next != nil {
		tail = tail.next
	}
	q.tail = tail
}

func (q *Queue) newNode(s string) (*qNode, error) {
	if q == nil {
		return nil, ErrInvalidArgument
	}
	q.mustBeLive()

	if err := q.alloc.Reserve(nodeSize); err != nil {
		return nil, err
	}
	if err := q.alloc.Reserve(len(s)); err != nil {
		q.alloc.Release(nodeSize)
		return nil, err
	}

	return &qNode{value: strings.Clone(s)}, nil
}

func (q *Queue) release(node *qNode) {
	q.alloc.Release(len(node.value))
	q.alloc.Release(nodeSize)
}

// link and unlinkHead are the only places head, tail and length change
// together outside of Reverse and Sort.
func (q *Queue) link(node *qNode, atHead bool) {
	switch {
	case q.length == 0:
		node.next = nil
		q.head, q.tail = node, node
	case atHead:
		node.next = q.head
		q.head = node
	default:
		node.next = nil
		q.tail.next = node
		q.tail = node
	}
	q.length++
}

func (q *Queue) unlinkHead() *qNode {
	node := q.head
	q.head = node.next
	node.next = nil
	q.length--
	if q.length == 0 {
		q.head, q.tail = nil, nil
	}
	return node
}

func (q *Queue) mustBeLive() {
	if q.released {
		panic("db: use of freed queue")
	}
}
