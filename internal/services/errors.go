package services

import "errors"

// Validation failures: the request is malformed, expired or inconsistent
// with stored state.
var (
	ErrChallengeExpired          = errors.New("challenge has expired")
	ErrSubChallengeCountMismatch = errors.New("sub-challenge count does not match the challenge")
	ErrUnknownSubChallenge       = errors.New("sub-challenge does not exist in the challenge")
	ErrRepetitionsIncreased      = errors.New("left repetitions may only decrease")
	ErrMalformedSubChallenges    = errors.New("missing or duplicated sub-challenge")
	ErrMalformedChallenge        = errors.New("malformed challenge")
	ErrSelfRequest               = errors.New("cannot send a friend request to yourself")
)

// Not-found failures: the referenced entity or relationship state is absent.
var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrGroupNotFound     = errors.New("group not found")
	ErrNotGroupMember    = errors.New("user is not a member of the group")
	ErrNoFriendRequest   = errors.New("no friend request exists")
	ErrNoFriendship      = errors.New("no friendship exists")
	ErrFriendshipPending = errors.New("friend request is still pending")
)

// Conflicts: the request races or repeats an already-resolved transition.
var (
	ErrAlreadyRequested = errors.New("friendship already requested")
	ErrAlreadyAccepted  = errors.New("friend request already accepted")
)
