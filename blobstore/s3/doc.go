// Package s3 stores symbol table snapshots in an Amazon S3 bucket.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("symtab/"),
//	    s3.WithRegion("us-east-1"),
//	)
//	err = snapshot.Save(ctx, store, "idents.symt", resolver)
//
// Uploads go through the SDK's multipart upload manager; small snapshots are
// sent in one request carrying their CRC32C so S3 rejects a damaged body.
// Blob reads are ranged GETs, so Inspect-style header reads fetch a few bytes
// only. Point WithEndpoint at LocalStack or another S3 emulator for tests.
package s3
