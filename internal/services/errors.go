package services

import "errors"

// Domain failures. Controllers map these onto HTTP status codes; everything
// else that escapes a service is treated as an infrastructure error.
var (
	ErrGameNotFound    = errors.New("game not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrParentMismatch  = errors.New("parent comment does not belong to this game")
	ErrInvalidVote     = errors.New(`invalid vote type, must be "like" or "dislike"`)
	ErrEmptyReason     = errors.New("report reason is required")
	ErrAlreadyReported = errors.New("you have already reported this game")
	ErrEmptyComment    = errors.New("comment text is required")
	ErrHasReplies      = errors.New("cannot delete comment with replies")
	ErrNotCommentOwner = errors.New("not authorized to delete this comment")
	ErrNotGameOwner    = errors.New("not authorized to delete this game")
	ErrMissingFields   = errors.New("title and description are required")
	ErrInvalidPage     = errors.New("page must be a positive number")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("username or email already taken")
	ErrBadCredentials  = errors.New("invalid username or password")
)
