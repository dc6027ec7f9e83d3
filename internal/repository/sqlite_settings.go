package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/chrona/internal/domain"
)

// SQLiteSettingsRepo stores the user-settings singleton (row id 1).
type SQLiteSettingsRepo struct {
	db *sql.DB
}

func NewSQLiteSettingsRepo(db *sql.DB) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: db}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.UserSettings, error) {
	query := `SELECT workspace_order, open_projects, theme, accent_color, color_mode
		FROM user_settings WHERE id = 1`
	var orderStr, openStr, theme, accent, mode string
	err := r.db.QueryRowContext(ctx, query).Scan(&orderStr, &openStr, &theme, &accent, &mode)
	if err == sql.ErrNoRows {
		return &domain.UserSettings{Theme: domain.ThemeDark, ColorMode: domain.ColorModeFull}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading user settings: %w", err)
	}
	return &domain.UserSettings{
		WorkspaceOrder: splitIDs(orderStr),
		OpenProjectIDs: splitIDs(openStr),
		Theme:          domain.Theme(theme),
		AccentColor:    accent,
		ColorMode:      domain.ColorMode(mode),
	}, nil
}

func (r *SQLiteSettingsRepo) Update(ctx context.Context, patch SettingsPatch) error {
	current, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if patch.WorkspaceOrder != nil {
		current.WorkspaceOrder = *patch.WorkspaceOrder
	}
	if patch.OpenProjectIDs != nil {
		current.OpenProjectIDs = *patch.OpenProjectIDs
	}
	if patch.Theme != nil {
		current.Theme = *patch.Theme
	}
	if patch.AccentColor != nil {
		current.AccentColor = *patch.AccentColor
	}
	if patch.ColorMode != nil {
		current.ColorMode = *patch.ColorMode
	}

	query := `INSERT INTO user_settings (id, workspace_order, open_projects, theme, accent_color, color_mode)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			workspace_order = excluded.workspace_order,
			open_projects = excluded.open_projects,
			theme = excluded.theme,
			accent_color = excluded.accent_color,
			color_mode = excluded.color_mode`
	_, err = r.db.ExecContext(ctx, query,
		joinIDs(current.WorkspaceOrder),
		joinIDs(current.OpenProjectIDs),
		string(current.Theme),
		current.AccentColor,
		string(current.ColorMode),
	)
	if err != nil {
		return fmt.Errorf("upserting user settings: %w", err)
	}
	return nil
}
