package db

import "github.com/pkg/errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAllocation      = errors.New("allocation failed")
	ErrEmptyQueue      = errors.New("queue is empty")
	ErrKeyExists       = errors.New("key already exists")
)
