package resp

import (
	"errors"
	"testing"
)

func TestSerialize(t *testing.T) {
	if r, err := Serialize(nil); r != "$-1\r\n" || err != nil {
		t.Error("Expected other result for Serialize(nil)")
	}

	if r, err := Serialize(12); r != ":12\r\n" || err != nil {
		t.Error("Expected other result for Serialize(12)")
	}

	if r, err := Serialize(-5); r != ":-5\r\n" || err != nil {
		t.Error("Expected other result for Serialize(-5)")
	}

	if r, err := Serialize("hello there!"); r != "$12\r\nhello there!\r\n" || err != nil {
		t.Error("Expected other result for Serialize('hello there!')")
	}

	if r, err := Serialize(""); r != "$0\r\n\r\n" || err != nil {
		t.Error("Expected other result for Serialize('')")
	}

	arr := []any{3, "word", -1}
	if r, err := Serialize(arr); r != "*3\r\n:3\r\n$4\r\nword\r\n:-1\r\n" || err != nil {
		t.Error("Expected other result for Serialize([3, 'word', -1])")
	}

	if r, err := Serialize([]string{}); r != "*0\r\n" || err != nil {
		t.Error("Expected other result for Serialize([])")
	}

	if r, err := Serialize([]string{"a", "bc"}); r != "*2\r\n$1\r\na\r\n$2\r\nbc\r\n" || err != nil {
		t.Error("Expected other result for Serialize(['a', 'bc'])")
	}

	err := errors.New("custom error")
	if r, err := Serialize(err); r != "-custom error\r\n" || err != nil {
		t.Error("Expected other result for Serialize(err)")
	}

	if _, err := Serialize(1.5); err == nil {
		t.Error("Expected Serialize(1.5) to fail")
	}
}

func TestSerializeSimple(t *testing.T) {
	if SerializeSimpleStr("OK") != "+OK\r\n" {
		t.Error("Expected other result from SerializeSimpleStr('OK')")
	}

	if r, err := Serialize(SimpleString("PONG")); r != "+PONG\r\n" || err != nil {
		t.Error("Expected other result from Serialize(SimpleString('PONG'))")
	}
}

func TestSerializeMap(t *testing.T) {
	m := map[string]any{"queues": 2, "name": "strq"}
	expected := "*4\r\n$4\r\nname\r\n$4\r\nstrq\r\n$6\r\nqueues\r\n:2\r\n"
	if r, err := Serialize(m); r != expected || err != nil {
		t.Errorf("Expected '%s' and got '%s'", expected, r)
	}
}
