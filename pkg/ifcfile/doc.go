// Package ifcfile provides the low-level access to parsed IFC files.
//
// A File offers typed attribute lookup by name for raw records (Handle),
// aggregate and enumerated set retrieval, inverse relation attributes and
// instance queries by entity type. Attribute names are resolved against a
// catalogue of entity definitions for the schema version currently in effect
// for the file, so that a runtime schema downgrade changes the
// interpretation of all subsequent lookups.
//
// Files can be read from STEP (ISO-10303-21) text, ifcXML or a ZIP
// container wrapping one of them.
package ifcfile
