// Provide serialization functions for compliance with the REdis Serialization Protocol
// specification, see: https://redis.io/docs/reference/protocol-spec/#resp-protocol-description
package resp

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

type SimpleString string

func Serialize(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return SerializeNil(), nil
	case bool:
		return SerializeBool(v), nil
	case int:
		return SerializeInt(v), nil
	case SimpleString:
		return SerializeSimpleStr(string(v)), nil
	case string:
		return SerializeStr(v), nil
	case error:
		return SerializeError(v), nil
	case []string:
		out := "*" + strconv.Itoa(len(v)) + "\r\n"
		for _, s := range v {
			out += SerializeStr(s)
		}
		return out, nil
	case []any:
		out := "*" + strconv.Itoa(len(v)) + "\r\n"
		for _, el := range v {
			r, err := Serialize(el)
			if err != nil {
				return "", err
			}
			out += r
		}
		return out, nil
	case map[string]any:
		// Maps go out as flat key/value arrays so RESP2 clients can read them.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := "*" + strconv.Itoa(2*len(v)) + "\r\n"
		for _, k := range keys {
			out += SerializeStr(k)
			r, err := Serialize(v[k])
			if err != nil {
				return "", err
			}
			out += r
		}
		return out, nil
	}

	return "", errors.Errorf("value of type %T cannot be serialized", v)
}

func SerializeNil() string {
	return "$-1\r\n"
}

func SerializeBool(b bool) string {
	if b {
		return SerializeInt(1)
	}
	return SerializeInt(0)
}

func SerializeSimpleStr(str string) string {
	return "+" + str + "\r\n"
}

func SerializeStr(str string) string {
	out := "$"
	out += strconv.Itoa(len(str)) + "\r\n"
	out += str + "\r\n"
	return out
}

func SerializeError(err error) string {
	return "-" + err.Error() + "\r\n"
}

func SerializeInt(n int) string {
	return ":" + strconv.Itoa(n) + "\r\n"
}
