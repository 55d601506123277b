package services

import "errors"

var (
	ErrSelfFollow         = errors.New("you cannot follow yourself")
	ErrSelfMessage        = errors.New("you cannot message yourself")
	ErrMessagingNotMutual = errors.New("messaging is only available between mutual followers")
	ErrEmptyMessage       = errors.New("message content cannot be empty")

	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrCredentialsInvalid = errors.New("wrong username or password")
	ErrResetTokenInvalid  = errors.New("reset link is invalid or has expired")

	ErrPostIncomplete = errors.New("post title and content are required")
	ErrInvalidLevel   = errors.New("invalid skill level")
	ErrEmptyComment   = errors.New("comment content cannot be empty")
)
