package domain

// Tables lists the gorm models migrated by the SQL storage backends
var Tables = []interface{}{
	&KvEntry{},
}
