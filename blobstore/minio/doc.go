// Package minio stores symbol table snapshots on MinIO or any other
// S3-compatible server through the minio-go client.
//
//	store, err := minio.New(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	}, "snapshots", "symtab/")
//	if err != nil { ... }
//	if err := store.EnsureBucket(ctx); err != nil { ... }
//	err = snapshot.Save(ctx, store, "idents.symt", resolver)
//
// NewStore accepts a preconfigured *minio.Client instead. The package needs no
// AWS SDK, which keeps air-gapped deployments small.
package minio
