package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to register a new
	// user fails because the username is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because the email address is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrAssetAlreadyExists is returned when an INSERT into the images table
	// collides with an existing (owner_id, filename) pair.
	ErrAssetAlreadyExists = errors.New("asset already exists")

	// ErrAssetNotFound is returned when a lookup by (owner_id, filename)
	// matches nothing. Because assets are namespaced per owner, a caller
	// probing another user's file receives this same error.
	ErrAssetNotFound = errors.New("asset was not found")

	// ErrFileNotFound is returned by the file store when the backing file
	// for an asset is missing on disk.
	ErrFileNotFound = errors.New("file was not found")
)

// Low-level database operation errors, wrapped by repository methods when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
