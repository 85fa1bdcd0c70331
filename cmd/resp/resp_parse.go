package resp

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Resp protocol's data types
const (
	RespStatus = '+' // +<string>\r\n
	RespError  = '-' // -<string>\r\n
	RespString = '$' // $<length>\r\n<bytes>\r\n
	RespInt    = ':' // :<number>\r\n
	RespNil    = '_' // _\r\n
	RespBool   = '#' // true: #t\r\n false: #f\r\n
	RespArray  = '*' // *<len>\r\n...
)

var ErrProtocol = errors.New("ERR protocol error")

// Read parses one value from r. Lines that do not start with a type marker
// are returned verbatim as inline commands.
func Read(r *bufio.Reader) (any, error) {
	l, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && l != "" {
			return strings.TrimRight(l, "\r\n"), nil
		}
		return nil, err
	}

	line := strings.TrimRight(l, "\r\n")
	if line == "" {
		return line, nil
	}

	switch line[0] {
	case RespNil:
		return nil, nil
	case RespBool:
		return len(line) > 1 && line[1] == 't', nil
	case RespInt:
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			return nil, errors.Wrap(ErrProtocol, "invalid integer")
		}
		return n, nil
	case RespStatus:
		return SimpleString(line[1:]), nil
	case RespString:
		return readString(r, line)
	case RespError:
		return errors.New(line[1:]), nil
	case RespArray:
		return readSlice(r, line)
	}

	return line, nil
}

func readString(r *bufio.Reader, line string) (any, error) {
	n, err := replyLen(line)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}

	b := make([]byte, n+2)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(err, "read bulk string")
	}

	return string(b[:n]), nil
}

func readSlice(r *bufio.Reader, line string) (any, error) {
	n, err := replyLen(line)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}

	arr := make([]any, n)
	for i := 0; i < len(arr); i++ {
		v, err := Read(r)
		if err != nil {
			return arr, err
		}

		arr[i] = v
	}

	return arr, nil
}

func replyLen(line string) (int, error) {
	n, err := strconv.Atoi(line[1:])
	if err != nil {
		return 0, errors.Wrapf(ErrProtocol, "invalid length '%s'", line[1:])
	}

	return n, nil
}
