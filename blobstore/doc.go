// Package blobstore holds snapshot bytes under slash-separated names.
//
// A Store writes whole blobs with Put and hands out read-only Blobs from
// Open. Put replaces a blob atomically: readers observe the old bytes or the
// new bytes, never a mix. Missing blobs are reported as ErrNotFound.
//
// MemoryStore serves tests, LocalStore keeps blobs in a directory and maps
// them on read, ThrottledStore caps the byte rate of another store. The s3
// and minio subpackages store blobs in object storage.
//
// Blobs that already sit in memory implement Mappable; ReadAll uses it to
// skip a read round trip.
package blobstore
