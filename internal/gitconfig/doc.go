// Package gitconfig reads the ordered synchronization targets that a
// repository declares under the cfsync configuration section.
//
// Each supported category maps to one multi-valued git configuration key
// (for example cfsync.fetch). A key that is not set marks its category as
// absent rather than failing the load.
package gitconfig
