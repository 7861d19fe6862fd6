// Package fileutil holds small filesystem helpers shared by writers of
// generated artifacts such as fingerprint sequence files.
package fileutil
