package main

import (
	"reflect"
	"testing"
)

func TestSanitize(t *testing.T) {
	if res, err := sanitize("version"); err != nil || !reflect.DeepEqual(res, []string{"version"}) {
		t.Error("Expected sanitize('version') to return ['version']")
	}
	if res, err := sanitize("version\n"); err != nil || !reflect.DeepEqual(res, []string{"version"}) {
		t.Error("Expected sanitize('version') to return ['version']")
	}
	if res, err := sanitize("rpush q a\nrpush q b"); err != nil || !reflect.DeepEqual(res, []string{
		"rpush", "q", "a", "rpush", "q", "b",
	}) {
		t.Error("Expected other result for multiple operations")
	}

	if res, err := sanitize("rpush \"my queue\" 'Hello there!' \"\""); err != nil || !reflect.DeepEqual(res, []string{
		"rpush", "my queue", "Hello there!", "",
	}) {
		t.Error("Expected other result for string input, got", res)
	}

	for _, bad := range []string{"rpush \"error", "rpush q '"} {
		if _, err := sanitize(bad); err != ErrUnbalancedQuotes {
			t.Errorf("Expected unbalanced quotes error for %q", bad)
		}
	}
}

func TestParseCommand(t *testing.T) {
	testcases := []struct {
		inp string
		exp *Command
	}{
		{"PING", &Command{Kind: CmdPing}},
		{"rpush q a b", &Command{Kind: CmdRPush, Key: "q", Values: []string{"a", "b"}}},
		{"lpush q a", &Command{Kind: CmdLPush, Key: "q", Values: []string{"a"}}},
		{"lpop q", &Command{Kind: CmdLPop, Key: "q"}},
		{"lpop q 3", &Command{Kind: CmdLPop, Key: "q", Limit: 3}},
		{"lrange q 0 -1", &Command{Kind: CmdLRange, Key: "q", Start: 0, Stop: -1}},
		{"qsort q", &Command{Kind: CmdQueueSort, Key: "q"}},
		{"qreverse q", &Command{Kind: CmdQueueReverse, Key: "q"}},
		{"qnew q", &Command{Kind: CmdQueueNew, Key: "q"}},
		{"del a b", &Command{Kind: CmdDel, Keys: []string{"a", "b"}}},
	}

	for i, tc := range testcases {
		res, err := ParseInline(tc.inp)
		if err != nil || !reflect.DeepEqual(res, tc.exp) {
			t.Errorf("Test %d: Expected result to be: %v got %v (%v)", i, tc.exp, res, err)
		}
	}
}

func TestParseCommandErrors(t *testing.T) {
	testcases := []string{
		"",
		"ping extra",
		"rpush q",
		"lpop q 0",
		"lpop q x",
		"lrange q 0",
		"lrange q a 1",
		"qsort",
		"del",
		"nope",
	}

	for _, inp := range testcases {
		if _, err := ParseInline(inp); err == nil {
			t.Errorf("Expected ParseInline(%q) to fail", inp)
		}
	}
}
