// Package usecase はidentifyフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrEmptyImage is returned when the uploaded image contains no data.
	ErrEmptyImage = errors.New("image data is empty")

	// ErrImageTooLarge is returned when the uploaded image exceeds the size limit.
	ErrImageTooLarge = errors.New("image size exceeds maximum")

	// ErrMisconfigured is returned when a required credential or setting is absent.
	// The wrapped message names the missing setting.
	ErrMisconfigured = errors.New("server misconfigured")

	// ErrUpstream is returned when the vision or metadata API fails with a
	// non-success status, a transport error, or a malformed response.
	// It is never conflated with an empty result.
	ErrUpstream = errors.New("upstream request failed")
)
