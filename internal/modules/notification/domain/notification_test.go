package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData_ValueScan(t *testing.T) {
	d := Data{"type": "like", "screen": ScreenProfile, "postId": "p1"}
	v, err := d.Value()
	require.NoError(t, err)

	var out Data
	require.NoError(t, out.Scan(v))
	assert.Equal(t, "p1", out["postId"])
	assert.Equal(t, ScreenProfile, out["screen"])

	require.NoError(t, out.Scan(`{"a":1}`))
	assert.Equal(t, float64(1), out["a"])

	require.NoError(t, out.Scan(nil))
	assert.Empty(t, out)

	assert.Error(t, out.Scan(42))

	var nilData Data
	v, err = nilData.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)
}

func TestData_Clone(t *testing.T) {
	d := Data{"a": 1}
	c := d.Clone()
	c["b"] = 2
	assert.NotContains(t, d, "b")
}

func TestEvents_Kinds(t *testing.T) {
	events := map[Event]EventKind{
		FriendRequestReceived{}: KindFriendRequestReceived,
		MessageSent{}:           KindMessageSent,
		LikeAdded{}:             KindLikeAdded,
		CommentAdded{}:          KindCommentAdded,
		UserCreated{}:           KindUserCreated,
	}
	for ev, kind := range events {
		assert.Equal(t, kind, ev.Kind())
	}
	assert.Equal(t, KindActivityInvite, ActivityInvite{}.Kind())
}
