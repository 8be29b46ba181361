package domain

// Credential is a transient username/password pair checked against the
// logins table. It is never persisted or logged by this service.
type Credential struct {
	Username string
	Password string
}

// AuthorizedSubject is the principal produced by a successful guard check.
type AuthorizedSubject struct {
	Username string
}
