package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

func ErrUnknownCmd(cmd string) error {
	return fmt.Errorf("ERR unknown command '%s'", cmd)
}

func ErrInvalidNArg(cmd string) error {
	return fmt.Errorf("ERR wrong number of arguments for '%s' command", cmd)
}

var ErrNotInt = errors.New("ERR value is not an integer or out of range")
var ErrUnbalancedQuotes = errors.New("ERR unbalanced quotes")
var ErrEmptyCommand = errors.New("ERR empty command")

type CommandType = byte

const (
	// Server commands
	CmdVersion CommandType = iota
	CmdPing
	CmdKeys
	CmdDbSize
	CmdFlushAll
	CmdInfo
	// Queues
	CmdQueueNew
	CmdLPush
	CmdRPush
	CmdLPop
	CmdLLen
	CmdLRange
	CmdQueueReverse
	CmdQueueSort
	CmdDel
)

type Command struct {
	Kind   CommandType
	Key    string
	Keys   []string
	Values []string

	Limit int // lpop
	Start int // lrange
	Stop  int // lrange
}

// ParseInline splits an inline request and parses it.
func ParseInline(message string) (*Command, error) {
	args, err := sanitize(message)
	if err != nil {
		return nil, err
	}
	return ParseCommand(args)
}

func ParseCommand(args []string) (*Command, error) {
	argc := len(args)
	if argc == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "version":
		if argc != 1 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdVersion}, nil
	case "ping":
		if argc != 1 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdPing}, nil
	case "keys":
		if argc != 1 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdKeys}, nil
	case "dbsize":
		if argc != 1 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdDbSize}, nil
	case "flushall":
		if argc != 1 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdFlushAll}, nil
	case "info":
		if argc != 1 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdInfo}, nil
	case "qnew":
		if argc != 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdQueueNew, Key: args[1]}, nil
	case "lpush", "rpush":
		if argc < 3 {
			return nil, ErrInvalidNArg(cmd)
		}
		kind := CmdLPush
		if cmd == "rpush" {
			kind = CmdRPush
		}
		return &Command{Kind: kind, Key: args[1], Values: args[2:]}, nil
	case "lpop":
		if argc != 2 && argc != 3 {
			return nil, ErrInvalidNArg(cmd)
		}
		lpop := &Command{Kind: CmdLPop, Key: args[1]}
		if argc == 3 {
			limit, err := strconv.Atoi(args[2])
			if err != nil || limit < 1 {
				return nil, ErrNotInt
			}
			lpop.Limit = limit
		}
		return lpop, nil
	case "llen":
		if argc != 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdLLen, Key: args[1]}, nil
	case "lrange":
		if argc != 4 {
			return nil, ErrInvalidNArg(cmd)
		}
		start, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, ErrNotInt
		}
		stop, err := strconv.Atoi(args[3])
		if err != nil {
			return nil, ErrNotInt
		}
		return &Command{Kind: CmdLRange, Key: args[1], Start: start, Stop: stop}, nil
	case "qreverse":
		if argc != 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdQueueReverse, Key: args[1]}, nil
	case "qsort":
		if argc != 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdQueueSort, Key: args[1]}, nil
	case "del":
		if argc < 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdDel, Keys: args[1:]}, nil
	}

	return nil, ErrUnknownCmd(cmd)
}

func isWhitespace(b byte) bool {
	return unicode.IsSpace(rune(b))
}

// sanitize splits an inline request on whitespace. Single or double quotes
// group words into one argument.
func sanitize(message string) ([]string, error) {
	out := []string{}
	i := 0

	for i < len(message) {
		c := message[i]
		if isWhitespace(c) {
			i++
			continue
		}

		if c == '"' || c == '\'' {
			end := strings.IndexByte(message[i+1:], c)
			if end < 0 {
				return nil, ErrUnbalancedQuotes
			}

			out = append(out, message[i+1:i+1+end])
			i += end + 2
			continue
		}

		start := i
		for i < len(message) && !isWhitespace(message[i]) {
			i++
		}
		out = append(out, message[start:i])
	}

	return out, nil
}
