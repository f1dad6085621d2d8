package minio

import "os"

// Config contains the settings needed to reach the object store.
type Config struct {
	// Endpoint is the host:port of the object storage service.
	Endpoint string

	// AccessKey and SecretKey authenticate the client.
	AccessKey string
	SecretKey string

	// UseSSL enables TLS for the connection.
	UseSSL bool

	// Bucket is the bucket holding uploaded recordings.
	Bucket string
}

// NewConfigFromEnv reads the object store configuration from environment variables.
func NewConfigFromEnv() Config {
	return Config{
		Endpoint:  getenvDefault("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		Bucket:    getenvDefault("MINIO_BUCKET", "recordings"),
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
