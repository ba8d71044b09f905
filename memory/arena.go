package memory

// Address space layout.
const (
	MEMORY_SIZE     = 0x10000 // Total addressable bytes.
	ARENA_ZERO_PAGE = 0x0000  // Single-byte addressable page.
	ARENA_STACK     = 0x0100  // Hardware stack page, indexed by SP.
	ARENA_PAGE_SIZE = 0x0100  // Bytes per page.
	RESET_VECTOR    = 0xfffc  // Where execution begins after reset.
)
