package exception

import "errors"

// ErrRecordNotFound custom database error for failure to find record
var ErrRecordNotFound = errors.New("record not found")

// ErrNotARepository returned when the working directory is not inside a
// git work tree
var ErrNotARepository = errors.New("not a git repository")

// ErrDirtyWorkTree returned when the repository has uncommitted changes
var ErrDirtyWorkTree = errors.New("working tree has uncommitted changes")
