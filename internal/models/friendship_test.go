package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKey_OrderIndependent(t *testing.T) {
	lo, hi, key := PairKey("zara", "adam")
	assert.Equal(t, "adam", lo)
	assert.Equal(t, "zara", hi)
	assert.Equal(t, "adam:zara", key)

	lo2, hi2, key2 := PairKey("adam", "zara")
	assert.Equal(t, lo, lo2)
	assert.Equal(t, hi, hi2)
	assert.Equal(t, key, key2)
}

func TestFriendshipRecord_Other(t *testing.T) {
	record := FriendshipRecord{LoUserID: "adam", HiUserID: "zara"}
	assert.Equal(t, "zara", record.Other("adam"))
	assert.Equal(t, "adam", record.Other("zara"))
	assert.True(t, record.Involves("adam"))
	assert.False(t, record.Involves("omar"))
}
