package postgres

import (
	"context"
	"fmt"

	"matchpoint/internal/model"
)

var _ model.RoleStore = (*RoleRepository)(nil)

type RoleRepository struct {
	db *Connection
}

func NewRoleRepository(db *Connection) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

func (r *RoleRepository) GetForUser(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

// AddToRoles assigns the named roles to the user. An unknown role name fails
// the whole call without inserting anything.
func (r *RoleRepository) AddToRoles(ctx context.Context, userID int64, roles []string) error {
	if len(roles) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, r.id FROM roles r WHERE r.name = ANY($2)
		ON CONFLICT DO NOTHING`

	cmd, err := r.db.Exec(ctx, query, userID, roles)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() < int64(len(roles)) {
		return fmt.Errorf("only %d of %d roles could be assigned", cmd.RowsAffected(), len(roles))
	}
	return nil
}

func (r *RoleRepository) RemoveFromRoles(ctx context.Context, userID int64, roles []string) error {
	if len(roles) == 0 {
		return nil
	}

	query := `
		DELETE FROM user_roles ur
		USING roles r
		WHERE ur.role_id = r.id AND ur.user_id = $1 AND r.name = ANY($2)`

	_, err := r.db.Exec(ctx, query, userID, roles)
	return err
}

func (r *RoleRepository) GetUsersWithRoles(ctx context.Context) ([]model.UserWithRoles, error) {
	query := `
		SELECT u.id, u.user_name, COALESCE(array_agg(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		LEFT JOIN roles r ON r.id = ur.role_id
		GROUP BY u.id, u.user_name
		ORDER BY u.user_name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.UserWithRoles
	for rows.Next() {
		var user model.UserWithRoles
		if err := rows.Scan(&user.ID, &user.UserName, &user.Roles); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
