package models

import "errors"

type Role string

const (
	RoleEmployer  Role = "employer"
	RoleCandidate Role = "candidate"
)

func ToRole(s string) (Role, error) {
	switch s {
	case string(RoleEmployer):
		return RoleEmployer, nil
	case string(RoleCandidate):
		return RoleCandidate, nil
	default:
		return "", errors.New("invalid role")
	}
}

type identityKind int

const (
	identityAnonymous identityKind = iota
	identityCandidate
	identityEmployer
)

// Account is the authenticated half of an Identity: the backend account id,
// its email and the access token issued for this browser session.
type Account struct {
	ID          string
	Email       string
	AccessToken string
}

// Identity is the tagged variant every handler dispatches on:
// Anonymous, Candidate or Employer. The zero value is Anonymous.
type Identity struct {
	kind    identityKind
	account Account
}

func Anonymous() Identity {
	return Identity{kind: identityAnonymous}
}

func CandidateIdentity(account Account) Identity {
	return Identity{kind: identityCandidate, account: account}
}

func EmployerIdentity(account Account) Identity {
	return Identity{kind: identityEmployer, account: account}
}

func IdentityFor(role Role, account Account) Identity {
	if role == RoleEmployer {
		return EmployerIdentity(account)
	}
	return CandidateIdentity(account)
}

func (i Identity) IsAnonymous() bool { return i.kind == identityAnonymous }
func (i Identity) IsCandidate() bool { return i.kind == identityCandidate }
func (i Identity) IsEmployer() bool  { return i.kind == identityEmployer }

// Account panics for anonymous identities: callers must check the variant
// first, the way every role-gated handler does.
func (i Identity) Account() Account {
	if i.kind == identityAnonymous {
		panic("account of anonymous identity")
	}
	return i.account
}

func (i Identity) Role() (Role, bool) {
	switch i.kind {
	case identityCandidate:
		return RoleCandidate, true
	case identityEmployer:
		return RoleEmployer, true
	default:
		return "", false
	}
}
