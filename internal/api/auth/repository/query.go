package authRepository

const (
	queryCreateUser = `
		INSERT INTO users (
			id,
			username,
			password,
			role,
			created_at,
			updated_at
		) VALUES (
			:id,
			:username,
			:password,
			:role,
			:created_at,
			:updated_at
		)
	`

	queryGetUserByID = `
		SELECT
			id,
			username,
			password,
			role,
			created_at,
			updated_at
		FROM users
		WHERE id = :id
	`

	queryGetAllUsers = `
		SELECT
			id,
			username,
			password,
			role,
			created_at,
			updated_at
		FROM users
		ORDER BY created_at DESC
	`
)
