package spade

// MockHashCollisions forces hashString to return the same value for every
// input, exercising ElementPool's bucket-scan fallback. Returns a function
// to undo the mocking, mirroring the teacher repo's MockUUIDs idiom.
func MockHashCollisions(value uint64) func() {
	old := hashString
	hashString = func(string) uint64 { return value }
	return func() { hashString = old }
}
