// Package pine provides a small embedded vector store that keeps every vector
// as a file and groups similar vectors into clusters on disk.
//
// # Quick Start
//
//	db, _ := pine.New("./data", 0.9)
//	defer db.Close()
//
//	_ = db.Save(pine.NewVector("doc-1", []float32{0.5, 0.3, 0.7}))
//	v, found, _ := db.Load("doc-1")
//
// # Clustering
//
// A saved vector joins the first cluster whose representative has a cosine
// similarity strictly greater than the threshold given to New. If no cluster
// qualifies, the vector founds a new one and becomes its permanent
// representative. Clusters are scanned in directory order and the first match
// wins, so the assignment is greedy rather than nearest.
//
// # On-disk Layout
//
//	<root>/vectors/000/metadata   representative of cluster 000
//	<root>/vectors/000/<id>       member vector
//	<root>/index/<id>             path of the cluster holding <id>
//
// Cluster directories are numbered by the count of existing clusters. Emptied
// clusters are never removed. Every record is a small checksummed binary
// file; see WithCompression for compressing the vector payload.
//
// # Errors
//
// Every failure is a *Error whose Kind is one of IOFailure, EncodingFailure,
// TextEncodingFailure or PathConversionFailure:
//
//	if errors.Is(err, pine.IOFailure) {
//	    // disk trouble
//	}
//
// # Concurrency
//
// Operations are synchronous and perform no locking. Callers must serialize
// writers themselves. Save is not atomic and a failure part way through is
// not repaired.
package pine
