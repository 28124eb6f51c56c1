package repository

import "errors"

var (
	ErrRedisConnection   = errors.New("redis connection error")
	ErrInvalidRecordData = errors.New("invalid dose status record data")
)
