// Package catalog holds the built-in automata: the {a,b} pattern, identifiers,
// product codes and institutional e-mail addresses, together with the sample
// strings used to demonstrate them.
package catalog
