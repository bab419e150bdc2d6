package wecom

import "fmt"

// Status classifies one delivery attempt.
type Status int

const (
	// StatusDelivered: transport 2xx and remote errcode 0.
	StatusDelivered Status = iota
	// StatusRemoteRejected: transport 2xx but the platform reported an
	// application-level error code.
	StatusRemoteRejected
	// StatusTransportFailed: network error, timeout, or non-2xx status.
	StatusTransportFailed
)

func (s Status) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusRemoteRejected:
		return "remote_rejected"
	case StatusTransportFailed:
		return "transport_failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the classified result of a single delivery attempt.
type Outcome struct {
	Status Status
	// Code is the remote errcode when Status is StatusRemoteRejected.
	Code int
	// Detail carries the remote errmsg, HTTP status line, or transport
	// error text for failed attempts. Empty when delivered.
	Detail string
}

func (o Outcome) Delivered() bool { return o.Status == StatusDelivered }

func (o Outcome) String() string {
	if o.Delivered() {
		return "delivered"
	}
	if o.Status == StatusRemoteRejected {
		return fmt.Sprintf("%s: errcode=%d %s", o.Status, o.Code, o.Detail)
	}
	return fmt.Sprintf("%s: %s", o.Status, o.Detail)
}

func delivered() Outcome { return Outcome{Status: StatusDelivered} }

func remoteRejected(code int, msg string) Outcome {
	return Outcome{Status: StatusRemoteRejected, Code: code, Detail: msg}
}

func transportFailed(detail string) Outcome {
	return Outcome{Status: StatusTransportFailed, Detail: detail}
}
