// Package bridge converts native Go data to and from value.Value without a
// textual intermediate.
//
// Plain data (bools, numbers, strings, pointers, slices, maps, structs,
// time.Time, *big.Int, encoding.TextMarshaler) is handled by reflection.
// Types that need a custom shape, Go's stand-in for enumerations in
// particular, implement Marshaler and Unmarshaler and drive the Encoder and
// Decoder visitor methods directly. Generated code targets the same methods.
//
// Enumeration variants are encoded by shape:
//
//	unit     -> "Name"
//	newtype  -> {"Name": inner}
//	tuple    -> {"Name": [a, b, ...]}
//	struct   -> {"Name": {"field": value, ...}}
//
// Struct fields use the `value` tag:
//
//	Name string `value:"name"`            // rename
//	Note string `value:"note,omitempty"`  // skip when empty, optional on decode
//	Hint string `value:"hint,optional"`   // optional on decode only
//	Skip string `value:"-"`               // ignored
//
// Pointer and value.Value fields are optional on decode. A nil value.Value
// encodes as Undefined and Undefined decodes back to nil, so the two
// absences survive a round trip.
package bridge
