// Package importer implements the import of IFC files into a host
// document.
//
// An import run is driven by a Session. It materializes the entity graph
// reachable from the project (pass 1), resolves lazily discovered
// relations until no new entities appear (pass 2) and finally creates
// the host elements bottom-up from the composed object tree (pass 3).
// Every record of the file is materialized at most once per session.
package importer
