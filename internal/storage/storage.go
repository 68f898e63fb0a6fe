package storage

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrorNoSuchKey   = errors.New("no such key")
)
