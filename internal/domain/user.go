package domain

// User is a record in the user directory. ID is assigned by the store and
// never by callers.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
