package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostString(t *testing.T) {
	post := &Post{Title: "Blog title", Author: User{Username: "test_user"}}
	assert.Equal(t, "Blog title - test_user", post.String())
}

func TestPostAuthorKey(t *testing.T) {
	assert.Equal(t, uint(5), (&Post{AuthorID: 5}).AuthorKey())
}

func TestUserPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("abc123"))
	assert.NotEqual(t, "abc123", u.Password)
	assert.True(t, u.CheckPassword("abc123"))
	assert.False(t, u.CheckPassword("abc1234"))

	require.NoError(t, u.SetPassword(""))
	assert.False(t, u.CheckPassword(""))
}

func TestNowIsUTCMicroseconds(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
}
