package model

//go:generate go run github.com/dmarkham/enumer -type RequestStatus -trimprefix Status -transform lower -json -sql -output status.gen.go

// RequestStatus is the top-level lifecycle state of an access request.
// pending may move to approved, rejected or escalated; escalated may move
// to approved or rejected; approved and rejected are terminal.
type RequestStatus int

const (
	StatusPending RequestStatus = iota
	StatusApproved
	StatusRejected
	StatusEscalated
)

// Terminal reports whether no further decisions may be applied.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}
