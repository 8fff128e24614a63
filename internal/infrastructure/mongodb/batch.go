package mongodb

// maxBatchOps caps the size of bulk writes so a large import or sweep
// never produces an oversized wire message
const maxBatchOps = 400

// chunk splits ops into batches of at most maxBatchOps elements
func chunk[T any](ops []T) [][]T {
	if len(ops) == 0 {
		return nil
	}
	batches := make([][]T, 0, (len(ops)+maxBatchOps-1)/maxBatchOps)
	for start := 0; start < len(ops); start += maxBatchOps {
		end := start + maxBatchOps
		if end > len(ops) {
			end = len(ops)
		}
		batches = append(batches, ops[start:end])
	}
	return batches
}
