// Package services holds the error taxonomy and context plumbing shared by
// the pipeline stages and their external tool clients.
package services
