// Package compile turns a source's aligned frames into renderable bucket
// assemblies: it segments frames into continuity buckets, matches every slot
// against the library-wide ratio index, and attaches each bucket's audio
// span.
package compile
