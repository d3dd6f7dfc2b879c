// Package resource throttles the bytes the store writes to disk.
//
// The store is embedded in host processes that share the disk with other
// workloads. A Controller configured with a byte rate turns every record
// write into a token-bucket reservation; writes wait for their tokens before
// touching the filesystem. A nil or unlimited Controller never waits.
//
//	c := resource.NewController(resource.Config{IOLimitBytesPerSec: 8 << 20})
//	c.AcquireIO(len(payload))
//	// write payload
package resource
