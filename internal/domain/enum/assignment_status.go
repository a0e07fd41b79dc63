package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AssignmentStatus represents the lifecycle of a warehouse to store assignment
type AssignmentStatus string

const (
	AssignmentStatusProcess    AssignmentStatus = "Process"
	AssignmentStatusDispatched AssignmentStatus = "Dispatched"
	AssignmentStatusDelivered  AssignmentStatus = "Delivered"
	AssignmentStatusCanceled   AssignmentStatus = "Canceled"
)

func (s AssignmentStatus) String() string {
	return string(s)
}

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentStatusProcess, AssignmentStatusDispatched, AssignmentStatusDelivered, AssignmentStatusCanceled:
		return true
	}
	return false
}

func (s AssignmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *AssignmentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = AssignmentStatus(str)
	return nil
}

func (s AssignmentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *AssignmentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = AssignmentStatusProcess
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = AssignmentStatus(v)
	case []byte:
		*s = AssignmentStatus(string(v))
	}
	return nil
}
