package format

// Align4 returns n aligned up to the next multiple of Alignment.
//
// Example:
//
//	Align4(1) = 4
//	Align4(4) = 4
//	Align4(5) = 8
func Align4(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// AlignPage returns n rounded up to the next multiple of pageSize.
// pageSize must be a power of two.
//
// Example (pageSize 4096):
//
//	AlignPage(1, 4096)    = 4096
//	AlignPage(4096, 4096) = 4096
//	AlignPage(4097, 4096) = 8192
func AlignPage(n, pageSize int) int {
	mask := pageSize - 1
	return (n + mask) & ^mask
}
