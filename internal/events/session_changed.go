package events

var SessionChangedTopic = "SessionChangedEvent"

type SessionChangeKind string

const (
	SignedIn  SessionChangeKind = "signed_in"
	SignedOut SessionChangeKind = "signed_out"
)

type SessionChanged struct {
	Kind      SessionChangeKind
	AccountID string
}
