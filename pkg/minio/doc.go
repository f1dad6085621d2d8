// Package minio wraps the MinIO SDK with the object operations the worker
// needs: existence checks and reads of uploaded recordings.
//
// The client validates connectivity and bucket existence at construction time
// so a misconfigured deployment fails at startup instead of on the first job.
//
// Usage:
//
//	client, err := minio.NewClient(minio.NewConfigFromEnv(), log)
//	if err != nil {
//	    return err
//	}
//
//	info, err := client.StatObject(ctx, "meetings/1234.mp4")
//
// The package integrates with fx via FXModule.
package minio
