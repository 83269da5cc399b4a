/*
Package boltdriver implements kv.Driver on top of go.etcd.io/bbolt, the
teacher's own embedded storage engine.

It registers two URI schemes with the kv package's driver registry:

  - "bolt://path/to/file.db" opens (creating if requested via
    kv.FlagCreateIfNotExists) a disk-backed bbolt database at path.
  - "memory://anything" opens a bbolt database backed by a temp file that
    is removed when the connection closes; it exists for tests and
    scratch use, not for an actual in-memory engine, since bbolt always
    needs a backing file for its mmap.

Internally, a single top-level bbolt bucket (rootBucketName) holds the
entire flat keyspace; stow's own bucket manager (pkg/kv) is what carves
that flat keyspace into named, identity-prefixed buckets. bbolt's nested
bucket feature is deliberately unused here, since the kv.Driver contract
only promises an ordered byte keyspace, not a bucket hierarchy.
*/
package boltdriver
