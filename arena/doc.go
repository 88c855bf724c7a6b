// Package arena
// Author: momentics <momentics@gmail.com>
//
// Single contiguous virtual address reservation split into fixed-size pages.
// The reservation carries no access rights and no committed physical memory
// until a page is explicitly granted; freeing revokes access so stray use
// faults instead of corrupting reused memory.
package arena
