// Package auth is the session collaborator: it yields a stable opaque
// user id while a session is active and nothing otherwise. The
// transition from no-user to user is what triggers a sync session;
// sign-out just stops propagation.
package auth

import "github.com/spf13/viper"

type Provider interface {
	// UserID returns the active user id; ok is false when signed out.
	UserID() (id string, ok bool)
}

// Config reads the user id from viper's "user" key, letting a single
// config file drive both the store path and the identity.
type Config struct{}

func (Config) UserID() (string, bool) {
	id := viper.GetString("user")
	return id, id != ""
}

// Static is a fixed identity, used by tests and one-shot commands.
type Static string

func (s Static) UserID() (string, bool) {
	return string(s), s != ""
}
