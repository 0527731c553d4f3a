package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationMethods_UnmarshalObject(t *testing.T) {
	t.Parallel()

	var n NotificationMethods
	require.NoError(t, json.Unmarshal([]byte(`{"email":true,"sms":false}`), &n))
	assert.True(t, n.Email)
	assert.False(t, n.SMS)
}

func TestNotificationMethods_UnmarshalEncodedString(t *testing.T) {
	t.Parallel()

	// Multipart clients submit the field as a form string, which arrives
	// here as a JSON string wrapping the object.
	var n NotificationMethods
	require.NoError(t, json.Unmarshal([]byte(`"{\"email\":false,\"sms\":true}"`), &n))
	assert.False(t, n.Email)
	assert.True(t, n.SMS)
}

func TestNotificationMethods_Malformed(t *testing.T) {
	t.Parallel()

	var n NotificationMethods
	assert.Error(t, json.Unmarshal([]byte(`"{not json"`), &n))
	assert.Error(t, n.Decode("{email: yes}"))
}
