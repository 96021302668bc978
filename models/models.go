package models

// MigrationModels lists the persisted models in dependency order for AutoMigrate
func MigrationModels() []any {
	return []any{
		&DataRow{},
		&GeneratedCampaign{},
		&AdGroup{},
		&Ad{},
		&Keyword{},
		&SyncRecord{},
		&AuditLog{},
	}
}
