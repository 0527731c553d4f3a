package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// User represents an application user record as stored in the `users`
// table.  The json tags are omitted on purpose: user rows carry the
// password hash, so handlers expose them only through an explicit public
// view that picks the safe fields.
//
// Fields:
//  ID             – primary key identifier of the user.
//  Name           – display name, required at registration.
//  Email          – unique email address.
//  PasswordHash   – bcrypt hashed password, never serialized.
//  Phone          – optional contact number.
//  ProfilePicture – relative URL of the uploaded picture, empty if none.
//  Preferences    – vacation type and notification channels.
//  SessionToken   – last token issued at login (vestigial, never consulted).
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
	ID             uint64
	Name           string
	Email          string
	PasswordHash   string
	Phone          string
	ProfilePicture string
	Preferences    Preferences
	SessionToken   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Preferences groups the user's travel preferences.
type Preferences struct {
	VacationType        string              `json:"vacation_type,omitempty"`
	NotificationMethods NotificationMethods `json:"notification_methods"`
}

// NotificationMethods records which channels the user wants to be
// contacted on.
type NotificationMethods struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

// UnmarshalJSON accepts either a JSON object or a string containing an
// encoded JSON object.  Multipart clients send the field as a form string,
// so both {"email":true} and "{\"email\":true}" must decode identically.
func (n *NotificationMethods) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return n.Decode(s)
	}
	type plain NotificationMethods
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*n = NotificationMethods(p)
	return nil
}

// Decode parses a JSON-encoded string form of the notification methods.
func (n *NotificationMethods) Decode(s string) error {
	type plain NotificationMethods
	var p plain
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return err
	}
	*n = NotificationMethods(p)
	return nil
}
