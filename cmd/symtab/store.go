package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/symtab/blobstore"
	"github.com/hupe1980/symtab/blobstore/minio"
	"github.com/hupe1980/symtab/blobstore/s3"
	"github.com/spf13/pflag"
)

// storeFlags selects and configures the blob store holding snapshots.
type storeFlags struct {
	kind      string
	dir       string
	bucket    string
	prefix    string
	region    string
	endpoint  string
	accessKey string
	secretKey string
	secure    bool
	ioLimit   int
}

func (f *storeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.kind, "store", "local", "snapshot store: local, s3 or minio")
	fs.StringVarP(&f.dir, "dir", "d", ".", "root directory of the local store")
	fs.StringVar(&f.bucket, "bucket", "", "bucket name (s3, minio)")
	fs.StringVar(&f.prefix, "prefix", "", "key prefix (s3, minio)")
	fs.StringVar(&f.region, "region", "", "AWS region override (s3)")
	fs.StringVar(&f.endpoint, "endpoint", "", "custom endpoint (s3: URL, minio: host:port)")
	fs.StringVar(&f.accessKey, "access-key", os.Getenv("MINIO_ACCESS_KEY"), "access key (minio)")
	fs.StringVar(&f.secretKey, "secret-key", os.Getenv("MINIO_SECRET_KEY"), "secret key (minio)")
	fs.BoolVar(&f.secure, "secure", true, "use HTTPS (minio)")
	fs.IntVar(&f.ioLimit, "io-limit", 0, "throttle store IO to this many bytes/s (0 = unlimited)")
}

func (f *storeFlags) open(ctx context.Context) (blobstore.Store, error) {
	var (
		store blobstore.Store
		err   error
	)

	switch f.kind {
	case "local":
		store = blobstore.NewLocalStore(f.dir)
	case "s3":
		if f.bucket == "" {
			return nil, errors.New("--bucket is required for the s3 store")
		}
		opts := []s3.Option{s3.WithPrefix(f.prefix)}
		if f.region != "" {
			opts = append(opts, s3.WithRegion(f.region))
		}
		if f.endpoint != "" {
			opts = append(opts, s3.WithEndpoint(f.endpoint))
		}
		store, err = s3.New(ctx, f.bucket, opts...)
	case "minio":
		if f.bucket == "" || f.endpoint == "" {
			return nil, errors.New("--bucket and --endpoint are required for the minio store")
		}
		store, err = minio.New(minio.Config{
			Endpoint:  f.endpoint,
			AccessKey: f.accessKey,
			SecretKey: f.secretKey,
			Secure:    f.secure,
			Region:    f.region,
		}, f.bucket, f.prefix)
	default:
		return nil, fmt.Errorf("unknown store %q", f.kind)
	}
	if err != nil {
		return nil, err
	}

	if f.ioLimit > 0 {
		store = blobstore.NewThrottledStore(store, f.ioLimit)
	}
	return store, nil
}
