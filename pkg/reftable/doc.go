// Package reftable holds the static reference data used by user agent rules to
// turn opaque hardware and build codes into readable labels.
//
// Tables ship as YAML files embedded into the binary. Each file is an ordered
// list of code/label entries; order matters for Find, which scans entries the
// same way the detection rules expect.
//
// # Usage
//
//	model := reftable.IPhone().Get("iPhone15,4") // "iPhone 15"
//	model = reftable.IPhone().Get("iPhone99,1")  // "Unknown"
//	model = reftable.Netflix().GetOrCode("XYZ")  // "Unknown: XYZ"
//
// A miss is never an error: callers receive the Unknown sentinel (or the
// "Unknown: <code>" form, which keeps the raw code around for diagnostics).
//
// # Error Handling
//
// Load returns ErrTableNotFound for an unknown table name and ErrInvalidTable
// when the embedded YAML cannot be decoded. The named accessors (Darwin,
// IPhone, ...) panic on those errors because the data is compiled in.
package reftable
