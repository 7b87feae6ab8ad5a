package common

// MaxBatchSize is the largest number of records a single batch delete may
// touch. Bulk deletions are split into sequential batches of this size.
const MaxBatchSize = 500
