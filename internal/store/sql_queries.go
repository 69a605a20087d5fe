package store

const (
	createUser = `INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, username, email, password_hash, created_at;`

	findUserByUsername = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE username = $1;`
)

// Column list shared by every images SELECT; order must match the scan
// destinations in repository_asset.go.
var assetColumns = []string{
	"asset_id",
	"owner_id",
	"filename",
	"width",
	"height",
	"format",
	"created_at",
	"updated_at",
}
