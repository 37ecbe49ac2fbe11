// Command facereel builds performance videos from a library of face frames.
//
// Raw frames, analysis records and audio are produced by external
// collaborators and dropped into per-source directories under the library
// root. facereel adjust normalizes the frames into ratio-keyed canonical
// form, facereel compile renders each source as a video of ratio-matched
// library frames, and facereel stitch joins the per-source videos into the
// final cut.
package main
