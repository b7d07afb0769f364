// Package hash provides the CRC32C checksum shared by snapshots and the S3
// store.
//
// Snapshots record the checksum of their uncompressed table and check it with
// Verify on load. S3 uploads carry the same checksum in base64 so the service
// can reject a corrupted body.
package hash
