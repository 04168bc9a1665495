package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrGoalNotFound       = errors.New("goal not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrNotAuthor          = errors.New("you are not the author of this post")
	ErrInvalidPostID      = errors.New("invalid post id")
	ErrStorageUnavailable = errors.New("cover storage is not configured")
)
