package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is the only domain error raised by the record stores.
var ErrNotFound = errors.New("not found")

// NotFoundError reports an id-keyed lookup that matched no record.
type NotFoundError struct {
	Entity string
	ID     int64
}

func NewNotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound checks whether err carries ErrNotFound anywhere in its chain.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Entity names as they appear in NotFound messages.
const (
	EntityStudent     = "Student"
	EntityTeacher     = "Teacher"
	EntityClass       = "Class"
	EntityAttendance  = "Attendance record"
	EntityEvent       = "Event"
	EntityBill        = "Bill"
	EntityReplacement = "Replacement request"
)
