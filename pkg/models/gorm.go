package models

// ModelsToAutoMigrate returns the models backing the service's tables. The
// production schema is owned by internal/migrate; tests auto-migrate these.
func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&Article{},
	}
}
