package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RequestStatus represents the state of an inter-store product request
type RequestStatus int

const (
	RequestStatusPending  RequestStatus = 0
	RequestStatusAccepted RequestStatus = 1
	RequestStatusRejected RequestStatus = 2
	RequestStatusReceived RequestStatus = 3
	RequestStatusCanceled RequestStatus = 4
)

func (s RequestStatus) String() string {
	names := [...]string{"Pending", "Accepted", "Rejected", "Received", "Canceled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s RequestStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *RequestStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = RequestStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = RequestStatusPending
	case "Accepted":
		*s = RequestStatusAccepted
	case "Rejected":
		*s = RequestStatusRejected
	case "Received":
		*s = RequestStatusReceived
	case "Canceled":
		*s = RequestStatusCanceled
	}
	return nil
}

func (s RequestStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *RequestStatus) Scan(value interface{}) error {
	if value == nil {
		*s = RequestStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = RequestStatus(v)
	case int:
		*s = RequestStatus(v)
	}
	return nil
}
