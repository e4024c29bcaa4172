// Package puzzle defines the treasure-hunt puzzle entity.
//
// A puzzle never holds its answers in recoverable form. At creation the
// answer texts are reduced to one-way fingerprints for matching, and the
// reward text is sealed in the vault under the answer texts themselves as
// keys. Whichever answer slot the author did not use is filled with a
// random unguessable string before hashing, so a reader of the persisted
// record cannot tell which modes are active.
package puzzle
