package db

import (
	"slices"
	"testing"

	"github.com/pkg/errors"
)

func TestDatabasePushPop(t *testing.T) {
	d := NewDatabase(nil)

	if n, err := d.RPush("q", "b", "a", "c"); n != 3 || err != nil {
		t.Error("Expected RPush to return 3")
	}
	if n, err := d.LPush("q", "z"); n != 4 || err != nil {
		t.Error("Expected LPush to return 4")
	}
	if d.LLen("q") != 4 {
		t.Error("Expected LLen('q') to be 4")
	}
	if v, found, err := d.LPop("q", 0); v != "z" || !found || err != nil {
		t.Error("Expected LPop('q') to return z")
	}
	if v, found, err := d.LPop("q", 1); v != "" || !found || err != nil {
		t.Error("Expected LPop('q', 1) to return an empty value")
	}
	if v, _, _ := d.LPop("q", 2); v != "a" {
		t.Error("Expected LPop('q', 2) to return a")
	}
	if _, found, _ := d.LPop("missing", 0); found {
		t.Error("Expected LPop on a missing key to find nothing")
	}
	if d.LLen("missing") != 0 {
		t.Error("Expected LLen on a missing key to be 0")
	}
}

func TestDatabaseSortReverseRange(t *testing.T) {
	d := NewDatabase(nil)
	d.RPush("q", "b", "a", "c", "d")

	if !d.Sort("q") {
		t.Error("Expected Sort('q') to find the queue")
	}
	if r := d.LRange("q", 0, -1); !slices.Equal(r, []string{"a", "b", "c", "d"}) {
		t.Error("Expected sorted range, got", r)
	}
	if !d.Reverse("q") {
		t.Error("Expected Reverse('q') to find the queue")
	}
	if r := d.LRange("q", 1, 2); !slices.Equal(r, []string{"c", "b"}) {
		t.Error("Expected [c b], got", r)
	}
	if r := d.LRange("q", -2, 10); !slices.Equal(r, []string{"b", "a"}) {
		t.Error("Expected [b a], got", r)
	}
	if r := d.LRange("q", 3, 1); len(r) != 0 {
		t.Error("Expected an empty range, got", r)
	}
	if d.Sort("missing") || d.Reverse("missing") {
		t.Error("Expected Sort and Reverse on a missing key to report false")
	}
}

func TestDatabaseKeys(t *testing.T) {
	d := NewDatabase(NewBudget(0))
	d.RPush("b", "1")
	d.RPush("a", "1")

	if err := d.Create("c"); err != nil {
		t.Error("Expected Create('c') to succeed")
	}
	if err := d.Create("c"); !errors.Is(err, ErrKeyExists) {
		t.Error("Expected Create('c') to fail the second time")
	}
	if keys := d.Keys(); !slices.Equal(keys, []string{"a", "b", "c"}) {
		t.Error("Expected keys [a b c], got", keys)
	}
	if d.DbSize() != 3 {
		t.Error("Expected DbSize() to be 3")
	}
	if d.Del("a", "missing") != 1 {
		t.Error("Expected Del to delete one key")
	}

	d.FlushAll()
	if d.DbSize() != 0 {
		t.Error("Expected DbSize() to be 0 after FlushAll")
	}
	if d.UsedMemory() != 0 {
		t.Error("Expected UsedMemory() to be 0 after FlushAll")
	}
}

func TestDatabaseMaxMemory(t *testing.T) {
	d := NewDatabase(NewBudget(queueSize + 2*nodeSize + 2))

	n, err := d.RPush("q", "a", "b", "c")
	if !errors.Is(err, ErrAllocation) {
		t.Error("Expected RPush to run out of memory")
	}
	if n != 2 || d.LLen("q") != 2 {
		t.Error("Expected two values to fit")
	}
}
