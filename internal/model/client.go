package model

// Client is a person who can book session seats. Email is unique and is the
// lookup key the public surface uses.
type Client struct {
	Base
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
