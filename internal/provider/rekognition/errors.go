package rekognition

import "errors"

var (
	// ErrSessionNotFound indicates that Rekognition does not know the session id
	ErrSessionNotFound = errors.New("rekognition liveness session not found")

	// ErrInvalidCredentials indicates that AWS credentials are invalid or missing
	ErrInvalidCredentials = errors.New("invalid or missing AWS credentials")

	// ErrThrottled indicates that Rekognition rejected the call for rate reasons
	ErrThrottled = errors.New("rekognition request throttled")

	// ErrInvalidParameter indicates that Rekognition rejected the request parameters
	ErrInvalidParameter = errors.New("invalid rekognition request parameters")

	// ErrEmptySessionID indicates that CreateFaceLivenessSession returned no session id
	ErrEmptySessionID = errors.New("rekognition returned an empty session id")
)
