package model

// Reference is a pending cross-file semantic reference, enqueued while a
// file is parsed and checked against all observed IDs once the run finishes.
type Reference struct {
	SourceFile string
	TargetID   string
	Kind       string
	Position   Position
}

// CrossFileIndexData is the plain-data shape of the cross-file index. The
// mutable, mutex-guarded behavior around this data lives in
// internal/crossfile.Index; this type exists so the data can be inspected,
// logged, or serialized independently of that behavior.
type CrossFileIndexData struct {
	SeenIDs           map[string]string // id -> first-seen file
	PendingReferences []Reference
}
