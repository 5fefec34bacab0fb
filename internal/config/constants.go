package config

const (
	DefaultDatabasePath   = "./importer.sqlite"
	DefaultUploadMaxBytes = 10 * 1024 * 1024
)
