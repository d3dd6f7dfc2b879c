// Package cluster stores vector records in similarity clusters.
//
// A cluster is a directory named by a zero-padded ordinal. Its first record
// becomes the representative (the "metadata" file) and is never replaced;
// every stored record gets a member file named by its id. New records join
// the first cluster, in directory listing order, whose representative has a
// cosine similarity strictly greater than the threshold; otherwise a new
// cluster is created with the record as its representative.
//
// The next ordinal is the number of cluster directories at creation time.
// Directories removed or added behind the store's back can therefore make a
// new cluster land on an existing name; the store does not guard against
// that.
package cluster
