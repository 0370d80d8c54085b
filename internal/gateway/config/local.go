package config

import (
	"os"
	"strings"
)

// localArchiveConfig targets the MinIO container of the local compose stack
// unless the ARCHIVE_S3_* variables say otherwise.
func localArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		Endpoint:  firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_ENDPOINT")), "localhost:9000"),
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		UseSSL:    false,
	}
}
