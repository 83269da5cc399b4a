/*
Package codec implements the byte-exact, order-preserving encoding stow uses
for every key and value it writes to a bucket.

Integers are encoded big-endian so that byte-lexicographic order equals
numeric order for unsigned values — ordered iteration over a bucket of
uint64 keys therefore yields ascending numeric order for free, with no
comparator beyond bytes.Compare. Booleans are a single 0/1 byte and strings
are written as raw UTF-8 with no length prefix or terminator; stow only
ever encodes a string as a whole key or whole value, never concatenated
with other fields, so no framing is needed.

Decoding is the exact inverse of encoding. A value of the wrong byte length
for the requested type is reported as a *DecodeError rather than silently
truncated or zero-extended.
*/
package codec
