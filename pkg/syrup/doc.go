/*
Package syrup implements the Syrup binary serialization format.

Syrup is a canonical self-describing encoding for a small closed set of
values: booleans, arbitrary precision integers, doubles, byte strings,
UTF-8 strings, symbols, lists, maps, sets and records. Every value has
exactly one canonical encoding, maps and sets are ordered by the
byte-lexicographic order of their members' encodings, so equal values
always produce identical bytes no matter how they were built.

Values are represented by the Item interface, the set of its
implementations is closed. Use Serialize (or Marshal for native Go values)
to encode and Deserialize or Decoder to decode:

	b, err := syrup.Serialize(syrup.NewRecord(syrup.NewSymbol("point"),
		syrup.NewInt64(1), syrup.NewInt64(2)))
	...
	item, err := syrup.Deserialize(b, syrup.DecodeOptions{})

Decoding is strict with respect to syntax, any malformed input produces
a *DecodeError carrying the offset of the problem. DecodeOptions.Strict
additionally rejects anything that is not in canonical form.
*/
package syrup
